package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"rental_engine/internal/model"
)

// 固定提示语
const (
	// NoMatchExplanation 无匹配结果时的固定提示
	NoMatchExplanation = "No matches found for your preferences."
	// ErrorExplanation 内部异常降级时的固定提示
	ErrorExplanation = "We couldn't process your preferences. Please try again."

	genericExplanation = "These cars best match your overall preferences."
	standoutThreshold  = 90.0
)

// Explain 根据偏好与 Top 结果生成自然语言的推荐理由
// 纯函数，输入确定则输出确定
// 只有在至少一辆 Top 结果真正满足某个维度时，该维度才出现在理由中
func Explain(query model.PreferenceQuery, top []ScoredCar) string {
	if len(top) == 0 {
		return NoMatchExplanation
	}

	var factors []string

	if query.Category != "" {
		for _, s := range top {
			if s.Car.Category == query.Category {
				factors = append(factors, fmt.Sprintf("category (%s)", query.Category))
				break
			}
		}
	}

	if query.MaxPrice != nil {
		for _, s := range top {
			if s.Car.PricePerDay <= *query.MaxPrice {
				factors = append(factors, fmt.Sprintf("budget (under $%s/day)", formatNumber(*query.MaxPrice)))
				break
			}
		}
	}

	if query.MinSeats != nil && *query.MinSeats > 0 {
		for _, s := range top {
			if s.Car.Seats >= *query.MinSeats {
				factors = append(factors, fmt.Sprintf("seating capacity (%d+ seats)", *query.MinSeats))
				break
			}
		}
	}

	if query.Transmission != "" {
		for _, s := range top {
			if s.Car.Transmission == query.Transmission {
				factors = append(factors, fmt.Sprintf("transmission type (%s)", query.Transmission))
				break
			}
		}
	}

	if len(factors) == 0 {
		return genericExplanation
	}

	explanation := "These cars were matched based on your preferences for "
	switch len(factors) {
	case 1:
		explanation += factors[0] + "."
	case 2:
		explanation += factors[0] + " and " + factors[1] + "."
	default:
		explanation += strings.Join(factors[:len(factors)-1], ", ") + ", and " + factors[len(factors)-1] + "."
	}

	// 榜首显著优于阈值时，追加单独点名
	if topScore := top[0].DisplayScore(); topScore >= standoutThreshold {
		explanation += fmt.Sprintf(" The %s is an excellent match with a %d%% compatibility score.",
			top[0].Car.Name, int(topScore))
	}

	return explanation
}

// formatNumber 去掉多余小数位，150.0 输出为 "150"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

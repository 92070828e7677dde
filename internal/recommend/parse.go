package recommend

import (
	"strconv"
	"strings"

	"rental_engine/internal/logger"
	"rental_engine/internal/model"
)

// RawPreferences HTTP 层传入的松散偏好，数值字段以字符串表示，需要解析
type RawPreferences struct {
	Category     string `json:"category"`
	MaxPrice     string `json:"max_price"`
	Seats        string `json:"seats"`
	Transmission string `json:"transmission"`
}

// ParsePreferences 把松散偏好解析为类型化查询
// 解析失败的数值字段按"无约束"处理并记录日志，绝不向调用方抛错，
// 从而保证打分函数本身的契约保持全函数、无副作用
func ParsePreferences(raw RawPreferences) model.PreferenceQuery {
	query := model.PreferenceQuery{
		Category:     strings.TrimSpace(raw.Category),
		Transmission: strings.TrimSpace(raw.Transmission),
	}

	if s := strings.TrimSpace(raw.MaxPrice); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
			query.MaxPrice = &v
		} else {
			logger.Debug("Ignoring invalid max_price preference: %q", s)
		}
	}

	if s := strings.TrimSpace(raw.Seats); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			query.MinSeats = &v
		} else {
			logger.Debug("Ignoring invalid seats preference: %q", s)
		}
	}

	return query
}

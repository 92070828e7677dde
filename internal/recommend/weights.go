package recommend

import (
	"fmt"
	"math"
)

// FeatureWeights 各评分维度的固定权重，按约定总和为 1.0
// 作为显式的不可变配置值传入引擎，便于测试替换不同权重组合
type FeatureWeights struct {
	Category     float64 `yaml:"category"`
	Price        float64 `yaml:"price"`
	Seats        float64 `yaml:"seats"`
	Transmission float64 `yaml:"transmission"`
	Rating       float64 `yaml:"rating"`
}

// DefaultWeights 返回默认权重组合
func DefaultWeights() FeatureWeights {
	return FeatureWeights{
		Category:     0.35,
		Price:        0.25,
		Seats:        0.20,
		Transmission: 0.10,
		Rating:       0.10,
	}
}

// Validate 校验权重非负且总和为 1.0
// 只在配置加载时调用一次，运行期不再检查
func (w FeatureWeights) Validate() error {
	fields := map[string]float64{
		"category":     w.Category,
		"price":        w.Price,
		"seats":        w.Seats,
		"transmission": w.Transmission,
		"rating":       w.Rating,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("weight '%s' must be non-negative, got %v", name, v)
		}
	}

	sum := w.Category + w.Price + w.Seats + w.Transmission + w.Rating
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

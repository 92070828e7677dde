package recommend

import (
	"math"
	"sort"

	"rental_engine/internal/model"
)

// DefaultLimit 默认返回的推荐数量
const DefaultLimit = 3

// ScoredCar 一辆车与其原始匹配分的配对
// 只在单次请求内存在，从不落盘
type ScoredCar struct {
	Car      model.Car
	RawScore float64
}

// DisplayScore 对外展示的百分比得分，封顶 100
func (s ScoredCar) DisplayScore() float64 {
	return math.Min(s.RawScore*100, 100)
}

// Rank 按原始分稳定降序排序并截断到 limit
// 排序使用未封顶的原始分，封顶只作用于展示值，保证高分车之间仍可区分；
// 稳定排序保证同分车辆维持其在目录中的相对顺序
func Rank(scored []ScoredCar, limit int) []ScoredCar {
	ranked := make([]ScoredCar, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RawScore > ranked[j].RawScore
	})

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

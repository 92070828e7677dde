package recommend

import (
	"rental_engine/internal/model"
)

// MatchScore 计算单辆车对一次偏好查询的原始匹配分
// 纯函数，无副作用；各维度独立累加，全部累加完成后才对负值做下限截断，
// 保证对外展示的百分比永远不为负
func MatchScore(car model.Car, query model.PreferenceQuery, history []model.RentalRecord, weights FeatureWeights) float64 {
	score := 0.0

	// 类别：精确匹配加整权重，不匹配不扣分
	if query.Category != "" && query.Category == car.Category {
		score += weights.Category
	}

	// 价格：预算内按"性价比"最多再奖励 50%，超预算按整权重扣分
	// 预算为 0 也是有效约束，任何正价车辆都算超预算
	if query.MaxPrice != nil {
		maxPrice := *query.MaxPrice
		switch {
		case car.PricePerDay > maxPrice:
			score -= weights.Price
		case maxPrice > 0:
			ratio := 1 - car.PricePerDay/maxPrice // 性价比，取值 [0,1)
			score += weights.Price * (1 + 0.5*ratio)
		default:
			score += weights.Price
		}
	}

	// 座位数：够用且冗余不超过 2 个为满分，明显偏大打八折，不够整权重扣分
	if query.MinSeats != nil && *query.MinSeats > 0 {
		need := *query.MinSeats
		switch {
		case car.Seats >= need && car.Seats <= need+2:
			score += weights.Seats
		case car.Seats > need+2:
			score += weights.Seats * 0.8
		default:
			score -= weights.Seats
		}
	}

	// 变速箱：精确匹配加分
	if query.Transmission != "" && query.Transmission == car.Transmission {
		score += weights.Transmission
	}

	// 评分：始终按 5 分制归一化计入；无评分的车辆此维度为 0
	if car.Rating > 0 {
		score += weights.Rating * (car.Rating / 5.0)
	}

	// 历史加成
	if len(history) > 0 {
		score += HistoryBonus(car, history)
	}

	if score < 0 {
		return 0
	}
	return score
}

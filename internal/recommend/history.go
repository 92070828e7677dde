package recommend

import (
	"rental_engine/internal/model"
)

// 历史加成/惩罚的固定系数
const (
	categoryFamiliarBonus = 0.05  // 租过同类别
	categoryLikedBonus    = 0.05  // 同类别评分均值 >= 4
	carLikedBonus         = 0.10  // 同车评分均值 >= 4
	carDislikedPenalty    = -0.15 // 同车评分均值 < 3，负向惩罚强于正向奖励
)

// HistoryBonus 根据用户历史租车记录计算加成或惩罚
// 纯函数；聚合与记录顺序无关
// 未评分的记录参与"租过"判断，但不参与评分均值计算
func HistoryBonus(car model.Car, history []model.RentalRecord) float64 {
	bonus := 0.0

	// 同类别记录
	var categoryCount, categoryRated int
	var categoryRatingSum float64
	for _, r := range history {
		if r.Category != car.Category {
			continue
		}
		categoryCount++
		if r.Rating != nil {
			categoryRatingSum += *r.Rating
			categoryRated++
		}
	}
	if categoryCount > 0 {
		bonus += categoryFamiliarBonus
		if categoryRated > 0 && categoryRatingSum/float64(categoryRated) >= 4 {
			bonus += categoryLikedBonus
		}
	}

	// 同车记录
	var carRated int
	var carRatingSum float64
	for _, r := range history {
		if r.CarID != car.ID {
			continue
		}
		if r.Rating != nil {
			carRatingSum += *r.Rating
			carRated++
		}
	}
	if carRated > 0 {
		avg := carRatingSum / float64(carRated)
		if avg >= 4 {
			bonus += carLikedBonus
		} else if avg < 3 {
			bonus += carDislikedPenalty
		}
	}

	return bonus
}

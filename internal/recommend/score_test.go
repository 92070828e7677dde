package recommend

import (
	"math"
	"testing"

	"rental_engine/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testCar() model.Car {
	return model.Car{
		ID:           1,
		Name:         "Tesla Model 3",
		Category:     model.CategoryElectric,
		PricePerDay:  120,
		Seats:        5,
		Transmission: model.TransmissionAutomatic,
		Rating:       4.8,
	}
}

// 任何输入下最终得分都不为负
func TestScoreNeverNegative(t *testing.T) {
	w := DefaultWeights()
	car := testCar()

	// 超预算 + 座位不足 + 无评分，所有维度都是惩罚
	car.Rating = 0
	query := model.PreferenceQuery{
		MaxPrice: fptr(50),
		MinSeats: iptr(8),
	}

	score := MatchScore(car, query, nil, w)
	if score < 0 {
		t.Errorf("score must be floored at 0, got %v", score)
	}
	if score != 0 {
		t.Errorf("expected all-penalty score to floor at exactly 0, got %v", score)
	}
}

// 类别精确匹配比不设类别约束恰好多出 weights.Category
func TestCategoryMatchDelta(t *testing.T) {
	w := DefaultWeights()
	car := testCar()

	base := MatchScore(car, model.PreferenceQuery{}, nil, w)
	withCategory := MatchScore(car, model.PreferenceQuery{Category: model.CategoryElectric}, nil, w)

	if !almostEqual(withCategory-base, w.Category) {
		t.Errorf("expected category delta %v, got %v", w.Category, withCategory-base)
	}

	// 类别不匹配不扣分
	mismatch := MatchScore(car, model.PreferenceQuery{Category: model.CategorySedan}, nil, w)
	if !almostEqual(mismatch, base) {
		t.Errorf("category mismatch must not penalize: base %v, got %v", base, mismatch)
	}
}

func TestPriceContribution(t *testing.T) {
	w := DefaultWeights()
	car := testCar()
	car.Rating = 0 // 关掉评分维度，只观察价格贡献

	// 恰好在预算线上：价值比为 0，贡献恰好等于 weights.Price
	exact := MatchScore(car, model.PreferenceQuery{MaxPrice: fptr(120)}, nil, w)
	if !almostEqual(exact, w.Price) {
		t.Errorf("price at exactly maxPrice: expected %v, got %v", w.Price, exact)
	}

	// 半价：价值比 0.5，贡献为 weights.Price * 1.25
	half := MatchScore(car, model.PreferenceQuery{MaxPrice: fptr(240)}, nil, w)
	if !almostEqual(half, w.Price*1.25) {
		t.Errorf("price at half of maxPrice: expected %v, got %v", w.Price*1.25, half)
	}

	// 超预算：整权重惩罚，与超出幅度无关
	// 用类别匹配抬高基线，避免下限截断掩盖惩罚值
	queryOver := model.PreferenceQuery{Category: model.CategoryElectric, MaxPrice: fptr(60)}
	queryFarOver := model.PreferenceQuery{Category: model.CategoryElectric, MaxPrice: fptr(1)}
	over := MatchScore(car, queryOver, nil, w)
	farOver := MatchScore(car, queryFarOver, nil, w)

	if !almostEqual(over, w.Category-w.Price) {
		t.Errorf("over budget: expected %v, got %v", w.Category-w.Price, over)
	}
	if !almostEqual(over, farOver) {
		t.Errorf("over-budget penalty must not depend on overage: %v vs %v", over, farOver)
	}

	// 预算 0 是有效约束：正价车辆按超预算处理，而不是忽略该维度
	queryZero := model.PreferenceQuery{Category: model.CategoryElectric, MaxPrice: fptr(0)}
	zero := MatchScore(car, queryZero, nil, w)
	if !almostEqual(zero, w.Category-w.Price) {
		t.Errorf("zero budget: expected %v, got %v", w.Category-w.Price, zero)
	}
}

func TestSeatsContribution(t *testing.T) {
	w := DefaultWeights()
	car := testCar()
	car.Rating = 0

	// 5 座车满足 4 座需求且冗余 1 个：满分
	match := MatchScore(car, model.PreferenceQuery{MinSeats: iptr(4)}, nil, w)
	if !almostEqual(match, w.Seats) {
		t.Errorf("seat match: expected %v, got %v", w.Seats, match)
	}

	// 明显偏大（需求 2 座，冗余 3 个）：八折
	bigger := MatchScore(car, model.PreferenceQuery{MinSeats: iptr(2)}, nil, w)
	if !almostEqual(bigger, w.Seats*0.8) {
		t.Errorf("oversized car: expected %v, got %v", w.Seats*0.8, bigger)
	}

	// 座位不足：整权重惩罚（用类别匹配抬高基线）
	short := MatchScore(car, model.PreferenceQuery{Category: model.CategoryElectric, MinSeats: iptr(7)}, nil, w)
	if !almostEqual(short, w.Category-w.Seats) {
		t.Errorf("insufficient seats: expected %v, got %v", w.Category-w.Seats, short)
	}
}

// 无任何约束时，得分退化为 weights.Rating * rating/5
func TestNoConstraintScoreIsRatingOnly(t *testing.T) {
	w := DefaultWeights()
	car := testCar()

	score := MatchScore(car, model.PreferenceQuery{}, nil, w)
	expected := w.Rating * car.Rating / 5.0
	if !almostEqual(score, expected) {
		t.Errorf("expected rating-only score %v, got %v", expected, score)
	}

	// 无评分的车此维度贡献 0
	car.Rating = 0
	if score := MatchScore(car, model.PreferenceQuery{}, nil, w); score != 0 {
		t.Errorf("unrated car with empty query: expected 0, got %v", score)
	}
}

func TestTransmissionContribution(t *testing.T) {
	w := DefaultWeights()
	car := testCar()
	car.Rating = 0

	match := MatchScore(car, model.PreferenceQuery{Transmission: model.TransmissionAutomatic}, nil, w)
	if !almostEqual(match, w.Transmission) {
		t.Errorf("transmission match: expected %v, got %v", w.Transmission, match)
	}

	mismatch := MatchScore(car, model.PreferenceQuery{Transmission: model.TransmissionManual}, nil, w)
	if mismatch != 0 {
		t.Errorf("transmission mismatch must contribute nothing, got %v", mismatch)
	}
}

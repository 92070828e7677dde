package pricing

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"rental_engine/internal/model"
)

// DemandEstimator 估计某日期、某车辆类别的需求系数
// 以接口形式注入定价器，测试可以替换为固定实现
type DemandEstimator interface {
	Estimate(date time.Time, category string) float64
}

// 按星期的基准需求
var baseDemand = map[time.Weekday]float64{
	time.Monday:    0.7,
	time.Tuesday:   0.7,
	time.Wednesday: 0.8,
	time.Thursday:  0.9,
	time.Friday:    1.2,
	time.Saturday:  1.3,
	time.Sunday:    1.0,
}

// 类别需求系数
var categoryDemand = map[string]float64{
	model.CategoryLuxury:   1.2,
	model.CategorySUV:      1.15,
	model.CategoryElectric: 1.3,
	model.CategoryCompact:  0.95,
	model.CategorySedan:    1.0,
}

// JitterEstimator 默认的需求估计实现
// 在星期与类别的基准需求上叠加 ±10% 的市场抖动，
// 抖动来自指定种子的随机源，相同种子下序列可复现
type JitterEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewJitterEstimator 用给定种子创建需求估计器
func NewJitterEstimator(seed int64) *JitterEstimator {
	return &JitterEstimator{rng: rand.New(rand.NewSource(seed))}
}

// Estimate 计算需求系数
func (e *JitterEstimator) Estimate(date time.Time, category string) float64 {
	demand, ok := baseDemand[date.Weekday()]
	if !ok {
		demand = 1.0
	}

	factor, ok := categoryDemand[category]
	if !ok {
		factor = 1.0
	}

	e.mu.Lock()
	jitter := 0.9 + e.rng.Float64()*0.2
	e.mu.Unlock()

	return demand * factor * jitter
}

// DayPrice 单日价格预测
type DayPrice struct {
	Date         string  `json:"date"`
	Price        float64 `json:"price"`
	IsWeekend    bool    `json:"is_weekend"`
	IsHoliday    bool    `json:"is_holiday"`
	DemandFactor float64 `json:"demand_factor"`
}

// Adjustments 同一辆车在不同场景下的价格
type Adjustments struct {
	BasePrice       float64 `json:"base_price"`
	WeekendPrice    float64 `json:"weekend_price"`
	HolidayPrice    float64 `json:"holiday_price"`
	LowDemandPrice  float64 `json:"low_demand_price"`
	HighDemandPrice float64 `json:"high_demand_price"`
}

// BookingAdvice 最佳预订时机建议
type BookingAdvice struct {
	RecommendedBookingDate string  `json:"recommended_booking_date"`
	DaysBeforeRental       int     `json:"days_before_rental"`
	ExpectedSavingsPercent float64 `json:"expected_savings_percent"`
	ConfidenceScore        int     `json:"confidence_score"`
}

// SmartPricing 动态定价器
// 定价公式本身是确定性的，唯一的变化来源是注入的 DemandEstimator
// 与最佳预订时机用的随机源，二者都可指定种子
type SmartPricing struct {
	weekendMultiplier    float64
	holidayMultiplier    float64
	highDemandMultiplier float64
	lowDemandMultiplier  float64
	seasonalFactors      map[time.Month]float64
	holidays             map[string]struct{}
	estimator            DemandEstimator

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New 创建动态定价器
func New(estimator DemandEstimator, seed int64) *SmartPricing {
	return &SmartPricing{
		weekendMultiplier:    1.25,
		holidayMultiplier:    1.4,
		highDemandMultiplier: 1.2,
		lowDemandMultiplier:  0.85,
		seasonalFactors: map[time.Month]float64{
			time.January:   0.9,
			time.February:  0.9,
			time.March:     1.0,
			time.April:     1.1,
			time.May:       1.15,
			time.June:      1.25,
			time.July:      1.35,
			time.August:    1.35,
			time.September: 1.15,
			time.October:   1.0,
			time.November:  0.9,
			time.December:  1.2,
		},
		holidays: map[string]struct{}{
			"01-01": {},
			"07-04": {},
			"12-24": {},
			"12-25": {},
			"12-31": {},
		},
		estimator: estimator,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
	}
}

// IsWeekend 判断日期是否为周末
func (p *SmartPricing) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday 判断日期是否为节假日
func (p *SmartPricing) IsHoliday(date time.Time) bool {
	_, ok := p.holidays[date.Format("01-02")]
	return ok
}

// DynamicPrice 计算某日期某类别的动态价格
// 依次叠加季节、周末、节假日系数，再按需求系数做高/低需求调价
func (p *SmartPricing) DynamicPrice(basePrice float64, date time.Time, category string) float64 {
	price := basePrice

	if factor, ok := p.seasonalFactors[date.Month()]; ok {
		price *= factor
	}

	if p.IsWeekend(date) {
		price *= p.weekendMultiplier
	}
	if p.IsHoliday(date) {
		price *= p.holidayMultiplier
	}

	demand := p.estimator.Estimate(date, category)
	if demand > 1.1 {
		price *= p.highDemandMultiplier
	} else if demand < 0.9 {
		price *= p.lowDemandMultiplier
	}

	return round2(price)
}

// Forecast 生成未来 days 天的价格预测
func (p *SmartPricing) Forecast(car model.Car, days int) []DayPrice {
	today := p.now()

	forecast := make([]DayPrice, 0, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		forecast = append(forecast, DayPrice{
			Date:         date.Format("2006-01-02"),
			Price:        p.DynamicPrice(car.PricePerDay, date, car.Category),
			IsWeekend:    p.IsWeekend(date),
			IsHoliday:    p.IsHoliday(date),
			DemandFactor: round2(p.estimator.Estimate(date, car.Category)),
		})
	}
	return forecast
}

// GetAdjustments 返回一辆车在各场景下的调价
func (p *SmartPricing) GetAdjustments(car model.Car) Adjustments {
	base := car.PricePerDay
	return Adjustments{
		BasePrice:       base,
		WeekendPrice:    round2(base * p.weekendMultiplier),
		HolidayPrice:    round2(base * p.holidayMultiplier),
		LowDemandPrice:  round2(base * p.lowDemandMultiplier),
		HighDemandPrice: round2(base * p.highDemandMultiplier),
	}
}

// OptimalBookingTime 预测最划算的预订时机
// TODO: 接入真实历史价格数据后改为基于数据的估计，目前是随机源驱动的演示值
func (p *SmartPricing) OptimalBookingTime(category string, targetDate time.Time, daysRange int) BookingAdvice {
	if daysRange < 8 {
		daysRange = 8
	}

	p.mu.Lock()
	daysBefore := 7 + p.rng.Intn(daysRange-6)
	savings := 5 + p.rng.Float64()*10
	confidence := 70 + p.rng.Intn(26)
	p.mu.Unlock()

	bookingDate := targetDate.AddDate(0, 0, -daysBefore)

	return BookingAdvice{
		RecommendedBookingDate: bookingDate.Format("2006-01-02"),
		DaysBeforeRental:       daysBefore,
		ExpectedSavingsPercent: round1(savings),
		ConfidenceScore:        confidence,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

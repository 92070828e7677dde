package model

// 车辆类别枚举，取值与目录配置文件保持一致
const (
	CategoryEconomy  = "Economy"
	CategoryCompact  = "Compact"
	CategorySedan    = "Sedan"
	CategorySUV      = "SUV"
	CategoryLuxury   = "Luxury"
	CategoryElectric = "Electric"
)

// 变速箱类型
const (
	TransmissionAutomatic = "Automatic"
	TransmissionManual    = "Manual"
)

// Car 代表车队中的一辆可租车辆
// 数据由目录提供方持有，推荐引擎只读不写
type Car struct {
	ID           int      `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category" yaml:"category"`
	PricePerDay  float64  `json:"price_per_day" yaml:"price_per_day"`
	Image        string   `json:"image,omitempty" yaml:"image"`
	Seats        int      `json:"seats" yaml:"seats"`
	Transmission string   `json:"transmission" yaml:"transmission"`
	Features     []string `json:"features,omitempty" yaml:"features"`
	Rating       float64  `json:"rating" yaml:"rating"`
}

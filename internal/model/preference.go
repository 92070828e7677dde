package model

// PreferenceQuery 用户的偏好查询，所有字段均可选
// 数值字段为 nil 表示"无此约束"，而不是"约束为 0"
type PreferenceQuery struct {
	Category     string
	MaxPrice     *float64
	MinSeats     *int
	Transmission string
}

// RentalRecord 一条历史租车记录
// Rating 为 nil 表示用户对该次租车未评分
type RentalRecord struct {
	UserID    string   `json:"user_id"`
	CarID     int      `json:"car_id"`
	Category  string   `json:"category"`
	Rating    *float64 `json:"rating,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

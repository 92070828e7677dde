package recommend

import (
	"rental_engine/internal/logger"
	"rental_engine/internal/model"
)

// Recommendation 单条推荐结果，MatchScore 为封顶后的百分比展示分
type Recommendation struct {
	Car        model.Car `json:"car"`
	MatchScore float64   `json:"match_score"`
}

// Result 一次推荐请求的完整结果，总是可 JSON 序列化
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Explanation     string           `json:"explanation"`
}

// Engine 推荐引擎
// 在一份只读目录快照上组合打分、历史加成、排序与解释四个纯函数阶段；
// 无共享可变状态、无 I/O，单个实例可被任意数量的并发请求安全使用。
// 若目录发生变化，应基于新快照重建引擎
type Engine struct {
	catalog []model.Car
	weights FeatureWeights
}

// NewEngine 基于目录快照构建引擎
// 入参切片会被复制一份，之后在引擎生命周期内视为只读
func NewEngine(catalog []model.Car, weights FeatureWeights) *Engine {
	snapshot := make([]model.Car, len(catalog))
	copy(snapshot, catalog)
	logger.Info("Recommendation engine initialized with %d vehicles", len(snapshot))
	return &Engine{
		catalog: snapshot,
		weights: weights,
	}
}

// Recommend 处理一次推荐请求
// 契约：永远返回可用结果；任何未预期的内部异常都在此边界被捕获，
// 降级为空列表加固定提示语，调用方不会收到 panic
func (e *Engine) Recommend(query model.PreferenceQuery, history []model.RentalRecord, limit int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Error generating recommendations: %v", r)
			result = Result{
				Recommendations: []Recommendation{},
				Explanation:     ErrorExplanation,
			}
		}
	}()

	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := make([]ScoredCar, 0, len(e.catalog))
	for _, car := range e.catalog {
		scored = append(scored, ScoredCar{
			Car:      car,
			RawScore: MatchScore(car, query, history, e.weights),
		})
	}

	top := Rank(scored, limit)

	recs := make([]Recommendation, 0, len(top))
	for _, s := range top {
		recs = append(recs, Recommendation{
			Car:        s.Car,
			MatchScore: s.DisplayScore(),
		})
	}

	return Result{
		Recommendations: recs,
		Explanation:     Explain(query, top),
	}
}

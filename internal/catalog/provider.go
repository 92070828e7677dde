package catalog

import (
	"fmt"
	"os"
	"strings"

	"rental_engine/internal/model"

	"gopkg.in/yaml.v3"
)

// Provider 定义了目录数据获取的接口
// 目录在加载后只读，快照语义由实现保证
type Provider interface {
	List() []model.Car
	Get(id int) (model.Car, error)
	Search(query string) []model.Car
}

// StaticProvider 基于静态配置文件实现的目录提供者
type StaticProvider struct {
	cars []model.Car
	byID map[int]model.Car
}

type staticConfig struct {
	Cars []model.Car `yaml:"cars"`
}

// NewStaticProvider 创建一个新的 StaticProvider 实例
// configPath 是车辆目录配置文件的路径 (yaml格式)
func NewStaticProvider(configPath string) (*StaticProvider, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog config file: %w", err)
	}

	var config staticConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	byID := make(map[int]model.Car, len(config.Cars))
	for _, car := range config.Cars {
		if _, exists := byID[car.ID]; exists {
			return nil, fmt.Errorf("duplicate car id in catalog: %d", car.ID)
		}
		byID[car.ID] = car
	}

	return &StaticProvider{
		cars: config.Cars,
		byID: byID,
	}, nil
}

// List 返回目录快照的副本
// 调用方可以自由持有返回值，不会观察到后续变化
func (p *StaticProvider) List() []model.Car {
	snapshot := make([]model.Car, len(p.cars))
	copy(snapshot, p.cars)
	return snapshot
}

// Get 根据车辆 ID 获取车辆信息
func (p *StaticProvider) Get(id int) (model.Car, error) {
	car, ok := p.byID[id]
	if !ok {
		return model.Car{}, fmt.Errorf("car not found: %d", id)
	}
	return car, nil
}

// Search 在名称、类别和配置项中做大小写不敏感的子串匹配
func (p *StaticProvider) Search(query string) []model.Car {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []model.Car
	for _, car := range p.cars {
		if strings.Contains(strings.ToLower(car.Name), q) ||
			strings.Contains(strings.ToLower(car.Category), q) {
			results = append(results, car)
			continue
		}
		for _, feature := range car.Features {
			if strings.Contains(strings.ToLower(feature), q) {
				results = append(results, car)
				break
			}
		}
	}
	return results
}

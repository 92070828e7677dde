package main

import (
	"flag"
	"log"
	"os"

	"rental_engine/internal/recommend"

	"gopkg.in/yaml.v3"
)

// ServerConfig 对应 configs/server.yaml
type ServerConfig struct {
	Server struct {
		Port  string `yaml:"port"`
		Debug bool   `yaml:"debug"`
	} `yaml:"server"`
	Paths struct {
		Cars    string `yaml:"cars"`
		Users   string `yaml:"users"`
		History string `yaml:"history"`
	} `yaml:"paths"`
	Engine struct {
		// Weights 为空时使用默认权重
		Weights *recommend.FeatureWeights `yaml:"weights"`
		Limit   int                       `yaml:"limit"`
	} `yaml:"engine"`
	Pricing struct {
		// Seed 为 0 时启动时取当前时间作种子
		Seed int64 `yaml:"seed"`
	} `yaml:"pricing"`
	History struct {
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"history"`
}

func loadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitServerConfig 初始化服务器配置，优先级：命令行参数 > 配置文件 > 默认值
func InitServerConfig() *ServerConfig {
	// 命令行参数默认值为空字符串，以便优先使用配置文件中的值
	configPath := flag.String("config", "configs/server.yaml", "Path to server config file")
	portFlag := flag.String("port", "", "Server port")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	carsConfigPathFlag := flag.String("cars", "", "Path to cars.yaml")
	userConfigPathFlag := flag.String("users", "", "Path to users.yaml")
	historyPathFlag := flag.String("history", "", "Path to history.jsonl")
	flag.Parse()

	// 1. 初始化默认值
	serverCfg := &ServerConfig{}
	serverCfg.Server.Port = "8080"
	serverCfg.Server.Debug = false
	serverCfg.Paths.Cars = "configs/cars.yaml"
	serverCfg.Paths.Users = "configs/users.yaml"
	serverCfg.Paths.History = "data/history.jsonl"
	serverCfg.Engine.Limit = recommend.DefaultLimit
	serverCfg.History.RetentionDays = 365

	// 2. 尝试加载配置文件，存在则覆盖默认值
	if loadedCfg, err := loadServerConfig(*configPath); err == nil {
		if loadedCfg.Server.Port != "" {
			serverCfg.Server.Port = loadedCfg.Server.Port
		}
		if loadedCfg.Server.Debug {
			serverCfg.Server.Debug = true
		}
		if loadedCfg.Paths.Cars != "" {
			serverCfg.Paths.Cars = loadedCfg.Paths.Cars
		}
		if loadedCfg.Paths.Users != "" {
			serverCfg.Paths.Users = loadedCfg.Paths.Users
		}
		if loadedCfg.Paths.History != "" {
			serverCfg.Paths.History = loadedCfg.Paths.History
		}
		if loadedCfg.Engine.Weights != nil {
			serverCfg.Engine.Weights = loadedCfg.Engine.Weights
		}
		if loadedCfg.Engine.Limit > 0 {
			serverCfg.Engine.Limit = loadedCfg.Engine.Limit
		}
		if loadedCfg.Pricing.Seed != 0 {
			serverCfg.Pricing.Seed = loadedCfg.Pricing.Seed
		}
		if loadedCfg.History.RetentionDays > 0 {
			serverCfg.History.RetentionDays = loadedCfg.History.RetentionDays
		}
	} else {
		// 默认配置文件不存在时不报错，直接使用硬编码默认值
		log.Printf("Info: Could not load config file '%s': %v. Using defaults or flags.", *configPath, err)
	}

	// 3. 应用命令行参数 (优先级最高)
	if *portFlag != "" {
		serverCfg.Server.Port = *portFlag
	}
	if *debugFlag {
		serverCfg.Server.Debug = true
	}
	if *carsConfigPathFlag != "" {
		serverCfg.Paths.Cars = *carsConfigPathFlag
	}
	if *userConfigPathFlag != "" {
		serverCfg.Paths.Users = *userConfigPathFlag
	}
	if *historyPathFlag != "" {
		serverCfg.Paths.History = *historyPathFlag
	}

	return serverCfg
}

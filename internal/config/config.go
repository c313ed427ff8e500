package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryEntry — строка таблицы категорий: человекочитаемый лейбл и куски
// URL каталога ({group}/{path}/{region}).
type CategoryEntry struct {
	Label string `yaml:"label"`
	Group string `yaml:"group"`
	Path  string `yaml:"path"`
}

type Root struct {
	Env   string `yaml:"env"`
	Local Config `yaml:"local"`
	Dev   Config `yaml:"dev"`
	Prod  Config `yaml:"prod"`
}

type Config struct {
	Env string `yaml:"-"`

	Log struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		AddSource bool   `yaml:"add_source"`
	} `yaml:"log"`

	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`

	Shop struct {
		BaseURL         string `yaml:"base_url"`
		DefaultCategory string `yaml:"default_category"`
		DefaultLocation string `yaml:"default_location"`
	} `yaml:"shop"`

	Categories []CategoryEntry `yaml:"categories"`

	Pagination struct {
		PageSize    int `yaml:"page_size"`
		MaxPageSize int `yaml:"max_page_size"`
	} `yaml:"pagination"`

	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		Retries        int `yaml:"retries"`
	} `yaml:"http"`

	CLI struct {
		Category   string `yaml:"category"`
		Location   string `yaml:"location"`
		OutputFile string `yaml:"output_file"`
	} `yaml:"cli"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}

	env := strings.TrimSpace(strings.ToLower(root.Env))
	if env == "" {
		env = "local"
	}

	var p Config
	switch env {
	case "local":
		p = root.Local
	case "dev":
		p = root.Dev
	case "prod":
		p = root.Prod
	default:
		return nil, fmt.Errorf("unknown env=%q (expected local|dev|prod)", env)
	}
	p.Env = env

	applyDefaults(&p)
	return &p, nil
}

// defaultCategories — таблица по умолчанию; контракт для потребителей:
// неизвестный лейбл откатывается на default_category, а не падает.
var defaultCategories = []CategoryEntry{
	{Label: "Bike", Group: "products", Path: "bikes"},
	{Label: "Accessories", Group: "products", Path: "accessories"},
	{Label: "Gear", Group: "products", Path: "gear"},
}

func applyDefaults(p *Config) {
	if p.Shop.BaseURL == "" {
		p.Shop.BaseURL = "http://localhost:3000"
	}
	if p.Shop.DefaultCategory == "" {
		p.Shop.DefaultCategory = "Bike"
	}

	if len(p.Categories) == 0 {
		p.Categories = append(p.Categories, defaultCategories...)
	}

	if p.Server.Host == "" {
		p.Server.Host = "0.0.0.0"
	}
	if p.Server.Port == 0 {
		p.Server.Port = 7892
	}

	if p.Pagination.PageSize <= 0 {
		p.Pagination.PageSize = 12
	}
	if p.Pagination.MaxPageSize <= 0 {
		p.Pagination.MaxPageSize = 100
	}
	if p.Pagination.PageSize > p.Pagination.MaxPageSize {
		p.Pagination.PageSize = p.Pagination.MaxPageSize
	}

	if p.HTTP.TimeoutSeconds <= 0 {
		p.HTTP.TimeoutSeconds = 30
	}
	if p.HTTP.Retries < 0 {
		p.HTTP.Retries = 0
	}

	if p.Log.Level == "" {
		if p.Env == "prod" {
			p.Log.Level = "info"
		} else {
			p.Log.Level = "debug"
		}
	}
	if p.Log.Format == "" {
		if p.Env == "prod" {
			p.Log.Format = "json"
		} else {
			p.Log.Format = "text"
		}
	}

	if p.CLI.Category == "" {
		p.CLI.Category = p.Shop.DefaultCategory
	}
	if p.CLI.OutputFile == "" {
		p.CLI.OutputFile = "./output/catalog.json"
	}
}

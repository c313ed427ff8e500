package repository

import (
	"storefront/internal/domain/models"
)

type CategoryMeta struct {
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
	Path  string `json:"path,omitempty"`
}

// CatalogResult — выгрузка одного каталога (category, region) в файл.
type CatalogResult struct {
	FetchedAt string           `json:"fetched_at"`
	Category  *CategoryMeta    `json:"category,omitempty"`
	Region    string           `json:"region"`
	Products  []models.Product `json:"products"`
	Count     int              `json:"count"`
}

type ScanEntry struct {
	Category string `json:"category"`
	Region   string `json:"region"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}

// ScanResult — сводка прогона по всем парам категория×регион.
type ScanResult struct {
	FetchedAt string      `json:"fetched_at"`
	Entries   []ScanEntry `json:"entries"`
	Total     int         `json:"total"`
}

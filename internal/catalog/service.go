package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/apis/shop"
	"storefront/internal/domain/models"
)

// Service — оркестрация одного фетча: лейбл категории -> запись таблицы ->
// запрос к бэкенду -> нормализация.
type Service struct {
	shop  shop.ShopService
	table *Table
	log   *slog.Logger
}

func NewService(shopSvc shop.ShopService, table *Table, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{shop: shopSvc, table: table, log: logger}
}

func (s *Service) Table() *Table {
	return s.table
}

// FetchCatalog retrieves and normalizes the catalog for one
// (category, region) key.
func (s *Service) FetchCatalog(ctx context.Context, label, regionCode string) ([]models.Product, error) {
	cat := s.table.Lookup(label)

	entries, err := s.shop.FetchCatalog(ctx, cat.Group, cat.Path, regionCode)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s/%s/%s: %w", cat.Group, cat.Path, regionCode, err)
	}

	products := Normalize(entries)

	if dropped := len(entries) - len(products); dropped > 0 {
		s.log.Warn("records without id dropped during normalize",
			"category", cat.Label,
			"region", regionCode,
			"dropped", dropped,
		)
	}
	s.log.Info("catalog fetched",
		"category", cat.Label,
		"region", regionCode,
		"count", len(products),
	)

	return products, nil
}

// Teams возвращает команды категории; бэкенд тут исторически ненадёжен,
// поэтому любая ошибка деградирует до пустого списка.
func (s *Service) Teams(ctx context.Context, label string) []shop.Team {
	cat := s.table.Lookup(label)

	teams, err := s.shop.FetchTeams(ctx, cat.Group, cat.Path)
	if err != nil {
		s.log.Warn("fetch teams failed (continue with empty)",
			"err", err,
			"category", cat.Label,
		)
		return []shop.Team{}
	}
	if teams == nil {
		teams = []shop.Team{}
	}
	return teams
}

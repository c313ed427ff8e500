// Package shop — клиент каталожного бэкенда витрины.
package shop

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/apis/shop/endpoints"
	"storefront/internal/apis/shop/responses"
	"storefront/internal/client/transport"
)

type Entry = responses.Entry
type Team = responses.Team
type TeamMember = responses.TeamMember
type APIError = endpoints.APIError

type ShopService interface {
	FetchCatalog(ctx context.Context, group, path, regionCode string) ([]Entry, error)
	FetchTeams(ctx context.Context, group, path string) ([]Team, error)
}

type service struct {
	api *endpoints.Client
	log *slog.Logger
}

func New(tr transport.Transport, baseURL string, logger *slog.Logger) ShopService {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{log: logger}
	s.api = endpoints.New(tr, baseURL, s.applyDefaultHeaders)
	return s
}

func (s *service) applyDefaultHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "storefront-catalog/1.0")
	req.Header.Set("Accept", "application/json, text/plain, */*")
}

func (s *service) FetchCatalog(ctx context.Context, group, path, regionCode string) ([]Entry, error) {
	entries, shape, err := s.api.Catalog(ctx, group, path, regionCode)
	if err != nil {
		return nil, err
	}
	if shape == endpoints.ShapeNone {
		s.log.Warn("unrecognized catalog payload shape, treating as empty",
			"group", group,
			"path", path,
			"region", regionCode,
		)
	} else {
		s.log.Debug("catalog payload extracted",
			"group", group,
			"path", path,
			"region", regionCode,
			"shape", string(shape),
			"count", len(entries),
		)
	}
	return entries, nil
}

func (s *service) FetchTeams(ctx context.Context, group, path string) ([]Team, error) {
	return s.api.Teams(ctx, group, path)
}

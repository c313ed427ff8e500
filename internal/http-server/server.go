package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/http-server/handlers/categories"
	"storefront/internal/http-server/handlers/products"
	"storefront/internal/http-server/handlers/teams"
	"storefront/internal/http-server/middleware"
)

type Server struct {
	log *slog.Logger
	mux *http.ServeMux
}

func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{log: log, mux: http.NewServeMux()}
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = middleware.WithRequestID(h)
	h = middleware.RecoverPanic(s.log, h)
	h = middleware.AccessLog(s.log, h)
	return h
}

type Deps struct {
	Catalog         products.Cataloger
	Teams           teams.Getter
	Table           *catalog.Table
	DefaultPageSize int
	MaxPageSize     int
	Timeout         time.Duration
}

func (s *Server) RegisterRoutes(dep Deps) {
	popts := products.Options{
		Log:             s.log,
		Catalog:         dep.Catalog,
		DefaultPageSize: dep.DefaultPageSize,
		MaxPageSize:     dep.MaxPageSize,
		Timeout:         dep.Timeout,
	}

	s.mux.HandleFunc("/products", products.NewListHandler(popts))
	s.mux.HandleFunc("/product", products.NewGetHandler(popts))
	s.mux.HandleFunc("/filters", products.NewFiltersHandler(popts))

	s.mux.HandleFunc("/categories", categories.NewGetHandler(categories.Options{
		Log:   s.log,
		Table: dep.Table,
	}))

	s.mux.HandleFunc("/teams", teams.NewGetHandler(teams.Options{
		Log:     s.log,
		Teams:   dep.Teams,
		Timeout: dep.Timeout,
	}))
}

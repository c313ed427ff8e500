package categories

import (
	"log/slog"
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/http-server/respond"
)

type Options struct {
	Log   *slog.Logger
	Table *catalog.Table
}

// NewGetHandler — GET /categories: сконфигурированная таблица категорий.
func NewGetHandler(opts Options) http.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}
		if opts.Table == nil {
			log.Error("categories handler misconfigured: table is nil")
			respond.WriteInternalError(w)
			return
		}

		all := opts.Table.All()

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"count":      len(all),
			"default":    opts.Table.Default().Label,
			"categories": all,
		})
	}
}

package teams

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/apis/shop"
	"storefront/internal/http-server/query"
	"storefront/internal/http-server/respond"
)

type Getter interface {
	Teams(ctx context.Context, label string) []shop.Team
}

type Options struct {
	Log     *slog.Logger
	Teams   Getter
	Timeout time.Duration
}

// NewGetHandler — GET /teams?category=...: команды витрины для категории.
// Сбои апстрима уже деградированы до пустого списка уровнем ниже.
func NewGetHandler(opts Options) http.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}
		if opts.Teams == nil {
			log.Error("teams handler misconfigured: getter is nil")
			respond.WriteInternalError(w)
			return
		}

		label, _ := query.Str(r, "category")

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		list := opts.Teams.Teams(ctx, label)

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"count": len(list),
			"teams": list,
		})
	}
}

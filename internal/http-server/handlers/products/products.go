package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain/models"
	"storefront/internal/http-server/query"
	"storefront/internal/http-server/respond"
	"storefront/internal/region"
)

// Cataloger — то, что хендлерам нужно от живого кеша каталога.
type Cataloger interface {
	Set(category, regionCode string)
	Await(ctx context.Context) catalog.Snapshot
	ProductByID(id string) (models.Product, error)
}

type Options struct {
	Log             *slog.Logger
	Catalog         Cataloger
	DefaultPageSize int
	MaxPageSize     int
	Timeout         time.Duration
}

func (o *Options) normalize() {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 12
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 100
	}
}

// NewListHandler — GET /products: переключает активный ключ каталога по
// category/location, дожидается снапшота и отдаёт отфильтрованную страницу.
func NewListHandler(opts Options) http.HandlerFunc {
	opts.normalize()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}
		if opts.Catalog == nil {
			opts.Log.Error("products handler misconfigured: Catalog is nil")
			respond.WriteInternalError(w)
			return
		}

		category, _ := query.Str(r, "category")

		regionCode := ""
		if loc, ok := query.Str(r, "location"); ok {
			regionCode = region.Resolve(loc)
		} else if code, ok := query.Str(r, "region"); ok {
			regionCode = code
		}

		page, _, err := query.Int(r, "page")
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}

		perPage := opts.DefaultPageSize
		if v, ok, err := queryPerPage(r); err != nil {
			respond.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		} else if ok {
			perPage = v
		}
		if perPage > opts.MaxPageSize {
			perPage = opts.MaxPageSize
		}

		spec, err := specFromQuery(r)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		spec.SearchTerm, _ = query.Str(r, "q")
		spec.PageIndex = page
		spec.PageSize = perPage

		opts.Catalog.Set(category, regionCode)

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		snap := opts.Catalog.Await(ctx)
		result := catalog.Apply(snap.Products, snap.Category, spec)

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"category":    snap.Category,
			"region":      snap.Region,
			"fetched_at":  formatFetchedAt(snap.FetchedAt),
			"page":        page,
			"per_page":    perPage,
			"total_count": result.TotalCount,
			"products":    result.Products,
		})
	}
}

// NewGetHandler — GET /product?id=...: единственное место, где промах
// по каталогу отдаётся наружу как ошибка.
func NewGetHandler(opts Options) http.HandlerFunc {
	opts.normalize()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}
		if opts.Catalog == nil {
			opts.Log.Error("product handler misconfigured: Catalog is nil")
			respond.WriteInternalError(w)
			return
		}

		id, ok := query.Str(r, "id")
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "bad_request", "id is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		// даём стартовому/текущему фетчу долететь, иначе промахи на
		// холодном кеше выглядели бы как not_found
		opts.Catalog.Await(ctx)

		p, err := opts.Catalog.ProductByID(id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				respond.WriteNotFound(w, err.Error())
				return
			}
			opts.Log.Error("ProductByID failed", "err", err, "id", id)
			respond.WriteInternalError(w)
			return
		}

		respond.WriteJSON(w, http.StatusOK, p)
	}
}

// NewFiltersHandler — GET /filters?category=...: фасеты и ценовые границы
// для сайдбара. Категория по умолчанию — активная.
func NewFiltersHandler(opts Options) http.HandlerFunc {
	opts.normalize()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}
		if opts.Catalog == nil {
			opts.Log.Error("filters handler misconfigured: Catalog is nil")
			respond.WriteInternalError(w)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		snap := opts.Catalog.Await(ctx)

		label := snap.Category
		if v, ok := query.Str(r, "category"); ok {
			label = v
		}

		facets := catalog.ComputeFacets(snap.Products, label)

		respond.WriteJSON(w, http.StatusOK, map[string]any{
			"category":   label,
			"attributes": facets.Attributes,
			"min_price":  facets.MinPrice,
			"max_price":  facets.MaxPrice,
		})
	}
}

// specFromQuery собирает плоский объект фильтров UI из query-параметров
// и прогоняет его через типизированный адаптер.
func specFromQuery(r *http.Request) (catalog.FilterSpec, error) {
	flat := map[string]any{}

	if price, ok, err := query.Float64(r, "price"); err != nil {
		return catalog.FilterSpec{}, err
	} else if ok {
		flat["price"] = price
	}

	for key, vals := range r.URL.Query() {
		if !strings.Contains(key, catalog.Separator) || len(vals) == 0 {
			continue
		}
		flat[key] = vals[0]
	}

	return catalog.SpecFromFlat(flat), nil
}

func queryPerPage(r *http.Request) (int, bool, error) {
	v, ok, err := query.Int(r, "per_page")
	if err != nil || !ok {
		return 0, ok, err
	}
	if v <= 0 {
		// мусорный per_page — откатываемся на дефолт
		return 0, false, nil
	}
	return v, true, nil
}

func formatFetchedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

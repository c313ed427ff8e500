package catalog

import (
	"strings"

	"storefront/internal/domain/models"
)

// FilterSpec — параметры одного запроса к снапшоту каталога. Живёт один
// запрос и нигде не сохраняется.
type FilterSpec struct {
	// PriceCeiling: nil = фильтра нет; ноль — валидный потолок.
	PriceCeiling *float64
	// Selections: группа -> допустимые значения. AND между группами,
	// OR внутри группы.
	Selections map[string]map[string]bool
	SearchTerm string
	PageIndex  int
	PageSize   int
}

type Page struct {
	Products   []models.Product
	TotalCount int
}

// Apply filters an immutable snapshot and slices out the requested page.
// The snapshot is never mutated; PageSize <= 0 disables pagination.
func Apply(products []models.Product, category string, spec FilterSpec) Page {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !MatchesCategory(p, category) {
			continue
		}
		if !matchesSearch(p, spec.SearchTerm) {
			continue
		}
		if spec.PriceCeiling != nil && p.Price > *spec.PriceCeiling {
			continue
		}
		if !matchesSelections(p, spec.Selections) {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	if spec.PageSize <= 0 {
		return Page{Products: filtered, TotalCount: total}
	}

	start := spec.PageIndex * spec.PageSize
	if spec.PageIndex < 0 || start >= total {
		// страница за пределами набора — пустой срез, не ошибка
		return Page{Products: []models.Product{}, TotalCount: total}
	}
	end := min(start+spec.PageSize, total)
	return Page{Products: filtered[start:end], TotalCount: total}
}

// MatchesCategory: точное совпадение type/subtype либо совпадение
// сингуляризованных форм без учёта регистра ("Bikes" ~ "bike").
func MatchesCategory(p models.Product, label string) bool {
	if p.Type == label || (p.Subtype != "" && p.Subtype == label) {
		return true
	}
	want := singularize(label)
	if singularize(p.Type) == want {
		return true
	}
	return p.Subtype != "" && singularize(p.Subtype) == want
}

// singularize — грубая эвристика: "ies" -> "y", иначе срезаем хвостовую
// "s". Известные ложные срабатывания ("bus" -> "bu") сохранены намеренно,
// потребители завязаны на текущее поведение.
func singularize(s string) string {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "ies") {
		return s[:len(s)-3] + "y"
	}
	if strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

func matchesSearch(p models.Product, term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), t) ||
		strings.Contains(strings.ToLower(p.Description), t) ||
		strings.Contains(strings.ToLower(p.Subtype), t)
}

func matchesSelections(p models.Product, selections map[string]map[string]bool) bool {
	for group, values := range selections {
		if len(values) == 0 {
			continue
		}

		// "Brand" — синтетическая группа поверх subtype
		have := p.Attributes[group]
		if group == "Brand" {
			have = p.Subtype
		}

		if have == "" || !values[have] {
			return false
		}
	}
	return true
}

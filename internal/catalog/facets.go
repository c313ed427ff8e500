package catalog

import (
	"sort"

	"storefront/internal/domain/models"
)

const (
	// сентинели для пустой категории; НЕ выводятся из данных
	emptyFacetMinPrice = 0
	emptyFacetMaxPrice = 1000
)

// Facets — материал для динамического сайдбара фильтров: группы атрибутов
// с наборами значений и ценовые границы категории.
type Facets struct {
	Attributes map[string][]string `json:"attributes"`
	MinPrice   float64             `json:"min_price"`
	MaxPrice   float64             `json:"max_price"`
}

// ComputeFacets collects the distinct attribute values and the price range
// across products matching the category. The synthetic "Brand" group is
// sourced from subtype. Empty category => empty groups and the 0/1000
// sentinel bounds.
func ComputeFacets(products []models.Product, category string) Facets {
	sets := map[string]map[string]bool{}
	var minPrice, maxPrice float64
	n := 0

	for _, p := range products {
		if category != "" && !MatchesCategory(p, category) {
			continue
		}

		if n == 0 {
			minPrice, maxPrice = p.Price, p.Price
		} else {
			if p.Price < minPrice {
				minPrice = p.Price
			}
			if p.Price > maxPrice {
				maxPrice = p.Price
			}
		}
		n++

		addFacetValue(sets, "Brand", p.Subtype)
		for k, v := range p.Attributes {
			addFacetValue(sets, k, v)
		}
	}

	if n == 0 {
		return Facets{
			Attributes: map[string][]string{},
			MinPrice:   emptyFacetMinPrice,
			MaxPrice:   emptyFacetMaxPrice,
		}
	}

	attrs := make(map[string][]string, len(sets))
	for group, values := range sets {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		attrs[group] = list
	}

	return Facets{Attributes: attrs, MinPrice: minPrice, MaxPrice: maxPrice}
}

func addFacetValue(sets map[string]map[string]bool, group, value string) {
	// мусорные значения в фильтры не попадают
	if value == "" || value == "null" {
		return
	}
	if sets[group] == nil {
		sets[group] = map[string]bool{}
	}
	sets[group][value] = true
}

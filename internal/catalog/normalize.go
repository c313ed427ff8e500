package catalog

import (
	"strconv"
	"strings"

	"storefront/internal/apis/shop"
	"storefront/internal/domain/models"
)

// Normalize converts raw backend entries into canonical products. Ingestion
// is deliberately lenient: upstream shapes are not under our control, so
// every field resolves through an ordered list of known names and a record
// is dropped only when no id can be resolved at all.
func Normalize(entries []shop.Entry) []models.Product {
	out := make([]models.Product, 0, len(entries))
	for _, e := range entries {
		if e.Raw == nil {
			continue
		}
		p, ok := normalizeOne(e.Raw)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalizeOne(raw map[string]any) (models.Product, bool) {
	id := pickString(raw, "p_id", "id")
	if id == "" {
		// записи без id молча выбрасываем, батч не роняем
		return models.Product{}, false
	}

	p := models.Product{
		ID:          id,
		Type:        pickString(raw, "p_type", "pType", "type"),
		Subtype:     pickString(raw, "p_subtype", "p_sub_type", "pSubType"),
		Name:        pickString(raw, "p_name", "name"),
		Description: pickString(raw, "p_desc", "description"),
		Currency:    pickString(raw, "p_currency", "currency"),
		Price:       priceOf(raw["p_price"]),
		ImageURL:    imageOf(raw["p_img_url"]),
		Attributes:  attributesOf(raw),
		Quantity:    quantityOf(raw, "p_quantity", "quantity"),
	}

	if p.Type == "" {
		p.Type = "Unknown"
	}
	if p.Name == "" {
		p.Name = "Unnamed"
	}
	return p, true
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := asString(v); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// asString коэрсит строку или число в строку; числовые id вида 3002
// приходят вперемешку со строковыми 'B3002'.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

func priceOf(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// imageOf: ровно одна картинка; если бэкенд прислал список — берём первую.
func imageOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, it := range t {
			if s, ok := asString(it); ok && s != "" {
				return s
			}
			break
		}
	}
	return ""
}

func attributesOf(raw map[string]any) map[string]string {
	var src map[string]any
	if m, ok := raw["attribute"].(map[string]any); ok {
		src = m
	} else if m, ok := raw["attributes"].(map[string]any); ok {
		src = m
	}

	out := make(map[string]string, len(src))
	for k, v := range src {
		if s, ok := asString(v); ok {
			out[k] = s
		}
	}
	return out
}

func quantityOf(m map[string]any, keys ...string) int {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t)
		case int:
			return t
		case int64:
			return int(t)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n
			}
		}
	}
	return 0
}

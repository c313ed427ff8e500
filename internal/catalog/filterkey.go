package catalog

import (
	"strconv"
	"strings"
)

// Separator — зарезервированный токен в ключах динамических чекбоксов
// ("Color___SEP___Red"). Выбран так, чтобы не встречаться в реальных
// данных; менять нельзя, на него завязан UI.
const Separator = "___SEP___"

func EncodeKey(group, value string) string {
	return group + Separator + value
}

// DecodeKey parses "group___SEP___value". Keys without the separator or
// with an empty side do not parse; callers treat those as absent.
func DecodeKey(key string) (group, value string, ok bool) {
	group, value, found := strings.Cut(key, Separator)
	if !found || group == "" || value == "" {
		return "", "", false
	}
	return group, value, true
}

// SpecFromFlat строит типизированный FilterSpec из плоского объекта
// фильтров UI: "price" (число) плюс булевы ключи group___SEP___value.
// Всё нераспознанное молча игнорируется.
func SpecFromFlat(flat map[string]any) FilterSpec {
	spec := FilterSpec{Selections: map[string]map[string]bool{}}

	for key, v := range flat {
		if key == "price" {
			if f, ok := asPrice(v); ok {
				ceiling := f
				spec.PriceCeiling = &ceiling
			}
			continue
		}

		if !isTrue(v) {
			continue
		}
		group, value, ok := DecodeKey(key)
		if !ok {
			continue
		}
		if spec.Selections[group] == nil {
			spec.Selections[group] = map[string]bool{}
		}
		spec.Selections[group][value] = true
	}

	return spec
}

func asPrice(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	}
	return false
}

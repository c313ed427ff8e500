package catalog

import "storefront/internal/config"

// Category — запись таблицы категорий: из Group и Path собирается URL
// каталога {group}/{path}/{region}.
type Category struct {
	Label string `json:"label"`
	Group string `json:"group"`
	Path  string `json:"path"`
}

// Table is the static category lookup. Unknown labels fall back to the
// default category's entry; consumers rely on that, it is part of the
// contract, not a convenience.
type Table struct {
	order   []Category
	byLabel map[string]Category
	def     string
}

func NewTable(entries []config.CategoryEntry, defaultLabel string) *Table {
	t := &Table{byLabel: make(map[string]Category, len(entries))}
	for _, e := range entries {
		c := Category{Label: e.Label, Group: e.Group, Path: e.Path}
		if _, dup := t.byLabel[c.Label]; dup {
			continue
		}
		t.byLabel[c.Label] = c
		t.order = append(t.order, c)
	}

	if _, ok := t.byLabel[defaultLabel]; !ok && len(t.order) > 0 {
		defaultLabel = t.order[0].Label
	}
	t.def = defaultLabel
	return t
}

func (t *Table) Lookup(label string) Category {
	if c, ok := t.byLabel[label]; ok {
		return c
	}
	return t.byLabel[t.def]
}

func (t *Table) Default() Category {
	return t.byLabel[t.def]
}

// All returns the table in config order.
func (t *Table) All() []Category {
	out := make([]Category, len(t.order))
	copy(out, t.order)
	return out
}

// Package region маппит свободный текст адреса (страна/город из адресной
// книги) в канонический код региона, который подставляется в URL каталога.
package region

import "strings"

const (
	IN   = "IN"
	IR   = "IR"
	USNC = "US-NC"

	// Default — регион по умолчанию: пустой или нераспознанный адрес
	// не ошибка, просто отдаём дефолтный склад.
	Default = USNC
)

type rule struct {
	contains []string
	equals   string
	code     string
}

// порядок правил важен: первое совпадение выигрывает
var rules = []rule{
	{contains: []string{"india"}, equals: "in", code: IN},
	{contains: []string{"ireland"}, equals: "ir", code: IR},
	{contains: []string{"usa", "united", "america"}, equals: "us", code: USNC},
}

// Resolve maps a free-text location to a region code. Matching is
// case-insensitive; unknown and empty input resolve to Default.
func Resolve(location string) string {
	l := strings.ToLower(strings.TrimSpace(location))
	if l == "" {
		return Default
	}
	for _, r := range rules {
		if l == r.equals {
			return r.code
		}
		for _, c := range r.contains {
			if strings.Contains(l, c) {
				return r.code
			}
		}
	}
	return Default
}

// Codes returns every known region code, in rule order.
func Codes() []string {
	out := make([]string, 0, len(rules))
	seen := map[string]bool{}
	for _, r := range rules {
		if !seen[r.code] {
			seen[r.code] = true
			out = append(out, r.code)
		}
	}
	return out
}

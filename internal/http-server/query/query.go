package query

import (
	"fmt"
	"net/http"
	"strconv"
)

func Str(r *http.Request, key string) (val string, present bool) {
	raw := r.URL.Query().Get(key)
	return raw, raw != ""
}

func StrAny(r *http.Request, keys ...string) (val string, present bool) {
	for _, k := range keys {
		if v, ok := Str(r, k); ok {
			return v, true
		}
	}
	return "", false
}

func Int(r *http.Request, key string) (val int, present bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be integer", key)
	}
	return n, true, nil
}

func Float64(r *http.Request, key string) (val float64, present bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be a number", key)
	}
	return f, true, nil
}

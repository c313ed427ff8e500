package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront/internal/apis/shop/responses"
)

// Shape — какой конверт ответа в итоге распознали. Нужен только для
// диагностики: бэкенд за время интеграций менял обёртку несколько раз.
type Shape string

const (
	ShapeArray    Shape = "array"
	ShapeProducts Shape = "products"
	ShapeData     Shape = "data"
	ShapeItems    Shape = "items"
	ShapeScan     Shape = "scan"
	ShapeNone     Shape = ""
)

// Catalog fetches the raw product list for {group}/{path}/{region}.
// Unknown payload shapes are not errors: the caller gets an empty slice and
// ShapeNone and decides whether to log.
func (c *Client) Catalog(ctx context.Context, group, path, regionCode string) ([]responses.Entry, Shape, error) {
	req, err := c.newReq(ctx, http.MethodGet, fmt.Sprintf("/%s/%s/%s", group, path, regionCode))
	if err != nil {
		return nil, ShapeNone, err
	}

	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, ShapeNone, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, ShapeNone, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ShapeNone, ParseAPIError(resp.StatusCode, []byte(strings.TrimSpace(string(b))))
	}

	var payload any
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, ShapeNone, fmt.Errorf("catalog %s/%s/%s: bad json body=%s",
			group, path, regionCode, string(b[:min(len(b), 1024)]))
	}

	entries, shape := extractEntries(payload)
	return entries, shape, nil
}

// extractEntries достаёт массив товаров из любого известного конверта.
// Порядок проверки ключей фиксированный, менять нельзя.
func extractEntries(payload any) ([]responses.Entry, Shape) {
	if arr, ok := payload.([]any); ok {
		return toEntries(arr), ShapeArray
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return []responses.Entry{}, ShapeNone
	}

	if arr, ok := obj["products"].([]any); ok {
		return toEntries(arr), ShapeProducts
	}
	if arr, ok := obj["data"].([]any); ok {
		return toEntries(arr), ShapeData
	}
	if arr, ok := obj["items"].([]any); ok {
		return toEntries(arr), ShapeItems
	}

	// последний шанс: первое попавшееся поле-массив
	for _, v := range obj {
		if arr, ok := v.([]any); ok {
			return toEntries(arr), ShapeScan
		}
	}

	return []responses.Entry{}, ShapeNone
}

func toEntries(arr []any) []responses.Entry {
	out := make([]responses.Entry, 0, len(arr))
	for _, it := range arr {
		if m, ok := it.(map[string]any); ok {
			out = append(out, responses.Entry{Raw: m})
		}
	}
	return out
}

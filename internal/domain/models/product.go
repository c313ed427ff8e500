package models

// Product — каноническая запись каталога. Создаётся только нормализатором
// и после этого не мутируется; json-теги совпадают с именами полей бэкенда,
// чтобы снапшоты сохранялись в том же формате.
type Product struct {
	ID          string            `json:"p_id"`
	Type        string            `json:"p_type"`
	Subtype     string            `json:"p_subtype,omitempty"`
	Name        string            `json:"p_name"`
	Description string            `json:"p_desc,omitempty"`
	Currency    string            `json:"p_currency,omitempty"`
	Price       float64           `json:"p_price"`
	ImageURL    string            `json:"p_img_url,omitempty"`
	Attributes  map[string]string `json:"attribute,omitempty"`
	Quantity    int               `json:"p_quantity"`
}

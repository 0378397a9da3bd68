package converter

import "time"

type ProductRedisModel struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"category_id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	BasePrice   string           `json:"base_price"`
	ImageURL    string           `json:"image_url,omitempty"`
	Stock       *int32           `json:"stock,omitempty"`
	Available   bool             `json:"available"`
	CreatedAt   time.Time        `json:"created_at"`
	Sizes       []SizeRedisModel `json:"sizes,omitempty"`
}

type SizeRedisModel struct {
	ID            string `json:"id"`
	SizeName      string `json:"size_name"`
	PriceModifier string `json:"price_modifier"`
	Stock         int32  `json:"stock"`
}

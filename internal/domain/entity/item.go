package entity

import (
	"time"

	"profitdesk/internal/domain/value"
)

// Item is the subject of a profitability evaluation. The ID is assigned by the
// persistence layer on insert and immutable afterwards.
type Item struct {
	ID          string        `json:"id" db:"id"`
	UserID      string        `json:"user_id" db:"user_id"`
	SourceURL   string        `json:"source_url,omitempty" db:"source_url"`
	Name        string        `json:"name,omitempty" db:"name"`
	Market      string        `json:"market" db:"market"`
	Category    string        `json:"category" db:"category"`
	TaxType     value.TaxType `json:"tax_type" db:"tax_type"`
	BuyPrice    int64         `json:"buy_price" db:"buy_price"`
	SellPrice   int64         `json:"sell_price" db:"sell_price"`
	ShippingFee int64         `json:"shipping_fee" db:"shipping_fee"`

	Evaluation

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// This file should be generated from the openapi specification and be called types.gen.go
package rest

import "time"

// EvaluateRequest is one profitability evaluation. Prices arrive from the
// browser glue either as numbers or as strings, so they stay untyped here and
// are coerced by the input normalizer.
type EvaluateRequest struct {
	BuyPrice    any    `json:"buy_price"`
	SellPrice   any    `json:"sell_price"`
	ShippingFee any    `json:"shipping_fee,omitempty"`
	Market      string `json:"market" validate:"required"`
	Category    string `json:"category" validate:"required"`
	TaxType     string `json:"tax_type,omitempty"`
}

// Evaluation is the result object of one evaluation.
type Evaluation struct {
	CommissionRate float64 `json:"commission_rate"`
	CommissionFee  int64   `json:"commission_fee"`
	VATFee         int64   `json:"vat_fee"`
	TotalCost      int64   `json:"total_cost"`
	Profit         int64   `json:"profit"`
	MarginRate     float64 `json:"margin_rate"`
	Decision       string  `json:"decision"`
	Reason         string  `json:"reason"`
}

type Item struct {
	ID          string `json:"id"`
	SourceURL   string `json:"source_url,omitempty"`
	Name        string `json:"name,omitempty"`
	Market      string `json:"market"`
	Category    string `json:"category"`
	TaxType     string `json:"tax_type"`
	BuyPrice    int64  `json:"buy_price"`
	SellPrice   int64  `json:"sell_price"`
	ShippingFee int64  `json:"shipping_fee"`

	Evaluation

	UpdatedAt time.Time `json:"updated_at"`
}

type CreateItemRequest struct {
	SourceURL   string `json:"source_url,omitempty"`
	Name        string `json:"name,omitempty"`
	BuyPrice    any    `json:"buy_price"`
	SellPrice   any    `json:"sell_price"`
	ShippingFee any    `json:"shipping_fee,omitempty"`
	Market      string `json:"market" validate:"required"`
	Category    string `json:"category" validate:"required"`
	TaxType     string `json:"tax_type,omitempty"`
}

// UpdateItemRequest is a merge patch: absent fields keep their stored values.
type UpdateItemRequest struct {
	SourceURL   *string `json:"source_url,omitempty"`
	Name        *string `json:"name,omitempty"`
	BuyPrice    any     `json:"buy_price,omitempty"`
	SellPrice   any     `json:"sell_price,omitempty"`
	ShippingFee any     `json:"shipping_fee,omitempty"`
	Market      *string `json:"market,omitempty"`
	Category    *string `json:"category,omitempty"`
	TaxType     *string `json:"tax_type,omitempty"`
}

type Settings struct {
	MinProfit        int64     `json:"min_profit"`
	SafetyBufferRate float64   `json:"safety_buffer_rate"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	MinProfit        int64   `json:"min_profit" validate:"min=0"`
	SafetyBufferRate float64 `json:"safety_buffer_rate" validate:"gte=0,lt=1"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type VerifyCodeResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
}

type CreateAccessCodeRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required"`
	Role   string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// DecisionLog is one decision flip recorded by the monitor.
type DecisionLog struct {
	ID           int64     `json:"id"`
	ItemID       string    `json:"item_id"`
	FromDecision string    `json:"from_decision"`
	ToDecision   string    `json:"to_decision"`
	Reason       string    `json:"reason"`
	Profit       int64     `json:"profit"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	Category string  `json:"category"`
	Rate     float64 `json:"rate"`
	Fallback bool    `json:"fallback"`
}

type PublicConfig struct {
	AuthURL     string `json:"authUrl"`
	AuthAnonKey string `json:"authAnonKey"`
}

// Error Error model
type Error struct {
	// Code Error code
	Code ErrorCode `json:"code"`

	// Message Error message (for display in the UI)
	Message string `json:"message"`
}

// ErrorCode Error code
type ErrorCode string

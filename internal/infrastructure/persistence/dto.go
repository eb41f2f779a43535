package persistence

import (
	"time"

	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/value"
)

// itemSchema maps one items row.
type itemSchema struct {
	ID          string `db:"id"`
	UserID      string `db:"user_id"`
	SourceURL   string `db:"source_url"`
	Name        string `db:"name"`
	Market      string `db:"market"`
	Category    string `db:"category"`
	TaxType     string `db:"tax_type"`
	BuyPrice    int64  `db:"buy_price"`
	SellPrice   int64  `db:"sell_price"`
	ShippingFee int64  `db:"shipping_fee"`

	CommissionRate float64 `db:"commission_rate"`
	CommissionFee  int64   `db:"commission_fee"`
	VATFee         int64   `db:"vat_fee"`
	TotalCost      int64   `db:"total_cost"`
	Profit         int64   `db:"profit"`
	MarginRate     float64 `db:"margin_rate"`
	Decision       string  `db:"decision"`
	Reason         string  `db:"reason"`

	UpdatedAt time.Time `db:"updated_at"`
}

func fromItem(e *entity.Item) *itemSchema {
	return &itemSchema{
		ID:             e.ID,
		UserID:         e.UserID,
		SourceURL:      e.SourceURL,
		Name:           e.Name,
		Market:         e.Market,
		Category:       e.Category,
		TaxType:        e.TaxType.String(),
		BuyPrice:       e.BuyPrice,
		SellPrice:      e.SellPrice,
		ShippingFee:    e.ShippingFee,
		CommissionRate: e.CommissionRate,
		CommissionFee:  e.CommissionFee,
		VATFee:         e.VATFee,
		TotalCost:      e.TotalCost,
		Profit:         e.Profit,
		MarginRate:     e.MarginRate,
		Decision:       e.Decision.String(),
		Reason:         e.Reason,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (s *itemSchema) toDomain() *entity.Item {
	return &entity.Item{
		ID:          s.ID,
		UserID:      s.UserID,
		SourceURL:   s.SourceURL,
		Name:        s.Name,
		Market:      s.Market,
		Category:    s.Category,
		TaxType:     value.TaxType(s.TaxType),
		BuyPrice:    s.BuyPrice,
		SellPrice:   s.SellPrice,
		ShippingFee: s.ShippingFee,
		Evaluation: entity.Evaluation{
			CommissionRate: s.CommissionRate,
			CommissionFee:  s.CommissionFee,
			VATFee:         s.VATFee,
			TotalCost:      s.TotalCost,
			Profit:         s.Profit,
			MarginRate:     s.MarginRate,
			Decision:       value.Decision(s.Decision),
			Reason:         s.Reason,
		},
		UpdatedAt: s.UpdatedAt,
	}
}

type settingsSchema struct {
	MinProfit        int64     `db:"min_profit"`
	SafetyBufferRate float64   `db:"safety_buffer_rate"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (s *settingsSchema) toDomain() *entity.Settings {
	return &entity.Settings{
		MinProfit:        s.MinProfit,
		SafetyBufferRate: s.SafetyBufferRate,
		UpdatedAt:        s.UpdatedAt,
	}
}

type commissionRateSchema struct {
	Market   string  `db:"market"`
	Category string  `db:"category"`
	Rate     float64 `db:"rate"`
	Fallback bool    `db:"fallback"`
}

func (s *commissionRateSchema) toDomain() entity.CommissionRate {
	return entity.CommissionRate{
		Market:   s.Market,
		Category: s.Category,
		Rate:     s.Rate,
		Fallback: s.Fallback,
	}
}

type userSecuritySchema struct {
	UserID         string `db:"user_id"`
	AccessCodeHash string `db:"access_code_hash"`
	Role           string `db:"role"`
}

func (s *userSecuritySchema) toDomain() *entity.UserSecurity {
	return &entity.UserSecurity{
		UserID:         s.UserID,
		AccessCodeHash: s.AccessCodeHash,
		Role:           s.Role,
	}
}

package profit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/value"
	"profitdesk/pkg/errcodes"
)

// RawInput is one evaluation request before validation. Amounts arrive from
// the browser glue as numbers, numeric strings, or nothing at all.
type RawInput struct {
	BuyPrice    any
	SellPrice   any
	ShippingFee any
	Market      string
	Category    string
	TaxType     string
}

// Input is a normalized evaluation request: amounts are non-negative integers
// in the smallest currency unit.
type Input struct {
	BuyPrice    int64
	SellPrice   int64
	ShippingFee int64
	Market      string
	Category    string
	TaxType     value.TaxType
}

// Normalize validates and coerces a raw request. Buy and sell prices are
// required; an absent or non-numeric shipping fee becomes 0; an absent tax
// regime becomes taxed. Pure, no side effects.
func Normalize(raw RawInput) (Input, error) {
	buy, err := requireAmount("buy_price", raw.BuyPrice)
	if err != nil {
		return Input{}, err
	}

	sell, err := requireAmount("sell_price", raw.SellPrice)
	if err != nil {
		return Input{}, err
	}

	shipping, err := shippingAmount(raw.ShippingFee)
	if err != nil {
		return Input{}, err
	}

	market := strings.TrimSpace(raw.Market)
	if market == "" {
		return Input{}, domain.NewError(errcodes.InvalidInput, "market is required")
	}

	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return Input{}, domain.NewError(errcodes.InvalidInput, "category is required")
	}

	taxType, ok := value.ParseTaxType(raw.TaxType)
	if !ok {
		return Input{}, domain.NewError(
			errcodes.InvalidInput,
			fmt.Sprintf("tax_type %q is not one of taxed, exempt", raw.TaxType),
		)
	}

	return Input{
		BuyPrice:    buy,
		SellPrice:   sell,
		ShippingFee: shipping,
		Market:      market,
		Category:    category,
		TaxType:     taxType,
	}, nil
}

func requireAmount(field string, v any) (int64, error) {
	amount, ok := coerceAmount(v)
	if !ok {
		return 0, domain.NewError(
			errcodes.InvalidInput,
			fmt.Sprintf("%s is missing or non-numeric", field),
		)
	}

	if amount < 0 {
		return 0, domain.NewError(
			errcodes.InvalidInput,
			fmt.Sprintf("%s must not be negative", field),
		)
	}

	return amount, nil
}

// shippingAmount substitutes 0 for anything absent or non-numeric, mirroring
// the upstream glue. A negative numeric value is still rejected.
func shippingAmount(v any) (int64, error) {
	amount, ok := coerceAmount(v)
	if !ok {
		return 0, nil
	}

	if amount < 0 {
		return 0, domain.NewError(errcodes.InvalidInput, "shipping_fee must not be negative")
	}

	return amount, nil
}

// coerceAmount accepts the numeric shapes a JSON decode can produce plus
// numeric strings. Amounts are whole minor currency units; fractions are
// non-numeric.
func coerceAmount(v any) (int64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatAmount(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}

		return floatAmount(f)
	default:
		return 0, false
	}
}

func floatAmount(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}

	return int64(f), true
}

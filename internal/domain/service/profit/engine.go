package profit

import (
	"context"
	"fmt"
	"math"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/value"
	"profitdesk/pkg/errcodes"
)

// DefaultVATRate is the value-added tax applied to the marketplace commission
// of a taxed item.
const DefaultVATRate = 0.10

// RateResolver supplies the commission rate for a market/category pair. The
// fallback policy for unknown categories belongs to the resolver; the engine
// only rejects rates outside [0,1).
type RateResolver interface {
	ResolveCommissionRate(ctx context.Context, market, category string) (float64, error)
}

type Thresholds struct {
	MinProfit        int64
	SafetyBufferRate float64
}

// Engine runs the profitability pipeline: normalize, resolve the commission
// rate, derive costs, decide. It is pure and safe for concurrent use.
type Engine struct {
	resolver RateResolver
	vatRate  float64
}

func NewEngine(resolver RateResolver) *Engine {
	return &Engine{
		resolver: resolver,
		vatRate:  DefaultVATRate,
	}
}

func (e *Engine) WithVATRate(rate float64) *Engine {
	e.vatRate = rate
	return e
}

// Evaluate normalizes a raw request and evaluates it against the thresholds
// snapshot.
func (e *Engine) Evaluate(ctx context.Context, raw RawInput, th Thresholds) (entity.Evaluation, error) {
	in, err := Normalize(raw)
	if err != nil {
		return entity.Evaluation{}, err
	}

	return e.EvaluateInput(ctx, in, th)
}

// EvaluateInput evaluates an already-normalized request.
func (e *Engine) EvaluateInput(ctx context.Context, in Input, th Thresholds) (entity.Evaluation, error) {
	rate, err := e.resolver.ResolveCommissionRate(ctx, in.Market, in.Category)
	if err != nil {
		return entity.Evaluation{}, fmt.Errorf("resolve commission rate: %w", err)
	}

	if rate < 0 || rate >= 1 {
		return entity.Evaluation{}, domain.NewError(
			errcodes.InvalidRate,
			fmt.Sprintf("commission rate %v outside [0,1)", rate),
		)
	}

	ev := calculate(in, rate, e.vatRate)
	ev.Decision, ev.Reason = decide(ev.Profit, in.SellPrice, th)

	return ev, nil
}

// EvaluateItem recomputes the derived fields of a stored item in place.
func (e *Engine) EvaluateItem(ctx context.Context, item *entity.Item, th Thresholds) error {
	in := Input{
		BuyPrice:    item.BuyPrice,
		SellPrice:   item.SellPrice,
		ShippingFee: item.ShippingFee,
		Market:      item.Market,
		Category:    item.Category,
		TaxType:     item.TaxType,
	}

	ev, err := e.EvaluateInput(ctx, in, th)
	if err != nil {
		return err
	}

	item.Evaluation = ev

	return nil
}

func calculate(in Input, commissionRate, vatRate float64) entity.Evaluation {
	commissionFee := roundHalfUp(float64(in.SellPrice) * commissionRate)

	var vatFee int64
	if in.TaxType == value.TaxTypeTaxed {
		vatFee = roundHalfUp(float64(commissionFee) * vatRate)
	}

	totalCost := in.BuyPrice + in.ShippingFee + commissionFee + vatFee
	profit := in.SellPrice - totalCost

	var marginRate float64
	if in.SellPrice > 0 {
		marginRate = float64(profit) / float64(in.SellPrice)
	}

	return entity.Evaluation{
		CommissionRate: commissionRate,
		CommissionFee:  commissionFee,
		VATFee:         vatFee,
		TotalCost:      totalCost,
		Profit:         profit,
		MarginRate:     marginRate,
	}
}

// decide applies the break-even-with-buffer policy. The required profit is the
// flat minimum plus a cushion proportional to the sale price; meeting it
// exactly is a SELL.
func decide(profit, sellPrice int64, th Thresholds) (value.Decision, string) {
	required := th.MinProfit + roundHalfUp(float64(sellPrice)*th.SafetyBufferRate)

	if profit >= required {
		return value.DecisionSell, fmt.Sprintf(
			"profit %d meets minimum %d plus safety buffer (required %d)",
			profit, th.MinProfit, required,
		)
	}

	return value.DecisionStop, fmt.Sprintf(
		"profit %d falls short of required %d by %d",
		profit, required, required-profit,
	)
}

// roundHalfUp rounds to the nearest integer, ties toward positive infinity.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

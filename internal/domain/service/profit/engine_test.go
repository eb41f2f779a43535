package profit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/internal/domain/value"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/tests"
)

type resolverFunc func(ctx context.Context, market, category string) (float64, error)

func (f resolverFunc) ResolveCommissionRate(ctx context.Context, market, category string) (float64, error) {
	return f(ctx, market, category)
}

func staticRate(rate float64) resolverFunc {
	return func(context.Context, string, string) (float64, error) {
		return rate, nil
	}
}

func rawInput(buy, sell, shipping int64, taxType string) profit.RawInput {
	return profit.RawInput{
		BuyPrice:    buy,
		SellPrice:   sell,
		ShippingFee: shipping,
		Market:      "coupang",
		Category:    "electronics",
		TaxType:     taxType,
	}
}

func TestEvaluateScenarios(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.10))
	th := profit.Thresholds{MinProfit: 500, SafetyBufferRate: 0.01}

	// Profitable item: commission 1000, VAT 100, required 500+100.
	ev, err := engine.Evaluate(ctx, rawInput(5000, 10000, 0, "taxed"), th)
	rq.NoError(err)
	rq.Equal(int64(1000), ev.CommissionFee)
	rq.Equal(int64(100), ev.VATFee)
	rq.Equal(int64(6100), ev.TotalCost)
	rq.Equal(int64(3900), ev.Profit)
	rq.InDelta(0.39, ev.MarginRate, 1e-9)
	rq.Equal(value.DecisionSell, ev.Decision)

	// Same item sold too cheap: profit goes negative.
	ev, err = engine.Evaluate(ctx, rawInput(5000, 5500, 0, "taxed"), th)
	rq.NoError(err)
	rq.Equal(int64(550), ev.CommissionFee)
	rq.Equal(int64(55), ev.VATFee)
	rq.Equal(int64(5605), ev.TotalCost)
	rq.Equal(int64(-105), ev.Profit)
	rq.Equal(value.DecisionStop, ev.Decision)
	// required = 500 + round(5500*0.01) = 555, shortfall 660.
	rq.Contains(ev.Reason, "by 660")
}

func TestEvaluateCostIdentity(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	random := tests.NewRandomizer()
	th := profit.Thresholds{MinProfit: 500, SafetyBufferRate: 0.02}

	for range 200 {
		rate := random.Float64() * 0.99
		buy := int64(random.Float64() * 100000)
		sell := int64(random.Float64() * 100000)
		shipping := int64(random.Float64() * 5000)

		taxType := "taxed"
		if random.Bool() {
			taxType = "exempt"
		}

		engine := profit.NewEngine(staticRate(rate))

		ev, err := engine.Evaluate(ctx, rawInput(buy, sell, shipping, taxType), th)
		rq.NoError(err)

		rq.Equal(buy+shipping+ev.CommissionFee+ev.VATFee, ev.TotalCost)
		rq.Equal(sell-ev.TotalCost, ev.Profit)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.07))
	th := profit.Thresholds{MinProfit: 300, SafetyBufferRate: 0.015}
	raw := rawInput(4200, 9900, 300, "taxed")

	first, err := engine.Evaluate(ctx, raw, th)
	rq.NoError(err)

	second, err := engine.Evaluate(ctx, raw, th)
	rq.NoError(err)

	rq.Equal(first, second)
}

func TestEvaluateCommissionScalesWithPrice(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.10))
	th := profit.Thresholds{MinProfit: 500, SafetyBufferRate: 0}

	low, err := engine.Evaluate(ctx, rawInput(5000, 10000, 0, "taxed"), th)
	rq.NoError(err)

	high, err := engine.Evaluate(ctx, rawInput(5000, 11000, 0, "taxed"), th)
	rq.NoError(err)

	gain := high.Profit - low.Profit
	rq.Positive(gain)
	rq.Less(gain, int64(1000))
}

func TestEvaluateTaxExempt(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.10))
	th := profit.Thresholds{MinProfit: 500, SafetyBufferRate: 0.01}

	ev, err := engine.Evaluate(ctx, rawInput(5000, 10000, 0, "exempt"), th)
	rq.NoError(err)
	rq.Equal(int64(1000), ev.CommissionFee)
	rq.Zero(ev.VATFee)
	rq.Equal(int64(6000), ev.TotalCost)
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	// Zero commission keeps profit equal to sell price, so the boundary can
	// be pinned exactly: required = 990 + round(1000*0.01) = 1000.
	engine := profit.NewEngine(staticRate(0))

	ev, err := engine.Evaluate(
		ctx,
		rawInput(0, 1000, 0, "exempt"),
		profit.Thresholds{MinProfit: 990, SafetyBufferRate: 0.01},
	)
	rq.NoError(err)
	rq.Equal(int64(1000), ev.Profit)
	rq.Equal(value.DecisionSell, ev.Decision)

	// One unit higher bar flips the same item to STOP.
	ev, err = engine.Evaluate(
		ctx,
		rawInput(0, 1000, 0, "exempt"),
		profit.Thresholds{MinProfit: 991, SafetyBufferRate: 0.01},
	)
	rq.NoError(err)
	rq.Equal(value.DecisionStop, ev.Decision)
	rq.Contains(ev.Reason, "by 1")
}

func TestEvaluateRoundHalfUp(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	th := profit.Thresholds{}

	// 10010 * 0.05 = 500.5 rounds up, 10001 * 0.05 = 500.05 rounds down.
	engine := profit.NewEngine(staticRate(0.05))

	ev, err := engine.Evaluate(ctx, rawInput(0, 10010, 0, "exempt"), th)
	rq.NoError(err)
	rq.Equal(int64(501), ev.CommissionFee)

	ev, err = engine.Evaluate(ctx, rawInput(0, 10001, 0, "exempt"), th)
	rq.NoError(err)
	rq.Equal(int64(500), ev.CommissionFee)
}

func TestEvaluateZeroSellPrice(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.10))

	ev, err := engine.Evaluate(ctx, rawInput(1000, 0, 0, "taxed"), profit.Thresholds{MinProfit: 500})
	rq.NoError(err)
	rq.Zero(ev.MarginRate)
	rq.Equal(int64(-1000), ev.Profit)
	rq.Equal(value.DecisionStop, ev.Decision)
}

func TestEvaluateInvalidRate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	th := profit.Thresholds{MinProfit: 500}

	for _, rate := range []float64{-0.1, 1.0, 1.5} {
		engine := profit.NewEngine(staticRate(rate))

		_, err := engine.Evaluate(ctx, rawInput(5000, 10000, 0, "taxed"), th)
		rq.Error(err)

		rq.Equal(errcodes.InvalidRate, domain.GetCode(err))
	}
}

func TestEvaluateVATRateOverride(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	engine := profit.NewEngine(staticRate(0.10)).WithVATRate(0.20)

	ev, err := engine.Evaluate(ctx, rawInput(5000, 10000, 0, "taxed"), profit.Thresholds{MinProfit: 500})
	rq.NoError(err)
	rq.Equal(int64(200), ev.VATFee)
}

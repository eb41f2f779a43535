package rates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain"
	"profitdesk/internal/infrastructure/rates"
	"profitdesk/pkg/errcodes"
)

type fakeRateRepo struct {
	rates     map[string]float64
	fallbacks map[string]float64
	getCalls  int
}

func (f *fakeRateRepo) GetRate(_ context.Context, market, category string) (float64, error) {
	f.getCalls++

	rate, ok := f.rates[market+"/"+category]
	if !ok {
		return 0, domain.NewError(errcodes.NotFound, "commission rate not found")
	}
	return rate, nil
}

func (f *fakeRateRepo) GetFallbackRate(_ context.Context, market string) (float64, error) {
	rate, ok := f.fallbacks[market]
	if !ok {
		return 0, domain.NewError(errcodes.MarketUnknown, "market has no fallback commission rate")
	}
	return rate, nil
}

func TestResolveCommissionRate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &fakeRateRepo{
		rates:     map[string]float64{"coupang/electronics": 0.10},
		fallbacks: map[string]float64{"coupang": 0.12},
	}
	resolver := rates.NewResolver(repo)

	rate, err := resolver.ResolveCommissionRate(ctx, "coupang", "electronics")
	rq.NoError(err)
	rq.InDelta(0.10, rate, 1e-9)

	// Unknown category falls back to the market's catch-all row.
	rate, err = resolver.ResolveCommissionRate(ctx, "coupang", "furniture")
	rq.NoError(err)
	rq.InDelta(0.12, rate, 1e-9)

	// Unknown market has nothing to fall back to.
	_, err = resolver.ResolveCommissionRate(ctx, "gmarket", "electronics")
	rq.Error(err)

	rq.Equal(errcodes.MarketUnknown, domain.GetCode(err))
}

func TestResolveCommissionRateCached(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &fakeRateRepo{
		rates: map[string]float64{"coupang/electronics": 0.10},
	}
	resolver := rates.NewResolver(repo)

	for range 3 {
		rate, err := resolver.ResolveCommissionRate(ctx, "coupang", "electronics")
		rq.NoError(err)
		rq.InDelta(0.10, rate, 1e-9)
	}

	rq.Equal(1, repo.getCalls)
}

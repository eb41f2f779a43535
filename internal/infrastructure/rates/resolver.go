package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"profitdesk/internal/domain"
	"profitdesk/pkg/errcodes"
)

const rateCacheTTL = 5 * time.Minute

type RateRepository interface {
	GetRate(ctx context.Context, market, category string) (float64, error)
	GetFallbackRate(ctx context.Context, market string) (float64, error)
}

// Resolver answers commission-rate lookups from the rate table, falling back
// to the market's catch-all row when a category is unknown. Resolved rates
// are cached briefly so a monitor sweep does not hammer the table.
type Resolver struct {
	repo      RateRepository
	rateCache *cache.Cache
}

func NewResolver(repo RateRepository) *Resolver {
	return &Resolver{
		repo:      repo,
		rateCache: cache.New(rateCacheTTL, 2*rateCacheTTL),
	}
}

func (r *Resolver) ResolveCommissionRate(ctx context.Context, market, category string) (float64, error) {
	key := market + "/" + category

	if cached, found := r.rateCache.Get(key); found {
		return cached.(float64), nil
	}

	rate, err := r.repo.GetRate(ctx, market, category)
	if err != nil {
		if !isNotFound(err) {
			return 0, fmt.Errorf("get rate: %w", err)
		}

		rate, err = r.repo.GetFallbackRate(ctx, market)
		if err != nil {
			return 0, fmt.Errorf("get fallback rate: %w", err)
		}
	}

	r.rateCache.Set(key, rate, cache.DefaultExpiration)

	return rate, nil
}

func isNotFound(err error) bool {
	var appErr *domain.AppError
	return errors.As(err, &appErr) && appErr.Code == errcodes.NotFound
}

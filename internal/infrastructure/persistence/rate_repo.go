package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/lox"
)

// fallbackCategory marks the per-market row answering unknown categories.
const fallbackCategory = "*"

type CommissionRateRepository struct {
	db *sqlx.DB
}

func NewCommissionRateRepository(db *sqlx.DB) *CommissionRateRepository {
	return &CommissionRateRepository{db: db}
}

func (r *CommissionRateRepository) GetRate(ctx context.Context, market, category string) (float64, error) {
	query := `SELECT rate FROM commission_rates WHERE market = $1 AND category = $2`

	var rate float64
	if err := r.db.GetContext(ctx, &rate, query, market, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NewError(errcodes.NotFound, "commission rate not found")
		}
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to get commission rate")
	}

	return rate, nil
}

func (r *CommissionRateRepository) GetFallbackRate(ctx context.Context, market string) (float64, error) {
	query := `SELECT rate FROM commission_rates WHERE market = $1 AND category = $2`

	var rate float64
	if err := r.db.GetContext(ctx, &rate, query, market, fallbackCategory); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NewError(errcodes.MarketUnknown, "market has no fallback commission rate")
		}
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to get fallback rate")
	}

	return rate, nil
}

// ListByMarket returns the market's rate table, fallback row included.
func (r *CommissionRateRepository) ListByMarket(ctx context.Context, market string) ([]entity.CommissionRate, error) {
	query := `
		SELECT market, category, rate, fallback
		FROM commission_rates
		WHERE market = $1
		ORDER BY fallback, category`

	var schemas []commissionRateSchema
	if err := r.db.SelectContext(ctx, &schemas, query, market); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list commission rates")
	}

	return lox.Map(schemas, func(s commissionRateSchema) entity.CommissionRate { return s.toDomain() }), nil
}

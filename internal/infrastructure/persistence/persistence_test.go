package persistence_test

import (
	"context"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/value"
	"profitdesk/internal/infrastructure/persistence"
	"profitdesk/pkg/dbtest"
	"profitdesk/pkg/errcodes"
)

// testDB connects to the database named by PG_TEST_DSN and applies the
// migrations. Tests are skipped when the variable is unset.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))

	return db
}

func TestItemRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewItemRepository(testDB(t))

	item := &entity.Item{
		UserID:      "user-1",
		Name:        "mechanical keyboard",
		Market:      "coupang",
		Category:    "electronics",
		TaxType:     value.TaxTypeTaxed,
		BuyPrice:    5000,
		SellPrice:   10000,
		ShippingFee: 0,
		Evaluation: entity.Evaluation{
			CommissionRate: 0.10,
			CommissionFee:  1000,
			VATFee:         100,
			TotalCost:      6100,
			Profit:         3900,
			MarginRate:     0.39,
			Decision:       value.DecisionSell,
			Reason:         "profit 3900 meets minimum 500 plus safety buffer (required 600)",
		},
	}

	rq.NoError(repo.Create(ctx, item))
	rq.NotEmpty(item.ID)

	got, err := repo.GetByID(ctx, item.ID)
	rq.NoError(err)
	rq.Equal(item.Evaluation, got.Evaluation)
	rq.Equal(item.BuyPrice, got.BuyPrice)

	got.SellPrice = 5500
	rq.NoError(repo.Update(ctx, got))

	ev := got.Evaluation
	ev.Decision = value.DecisionStop
	rq.NoError(repo.UpdateEvaluation(ctx, got.ID, ev))

	listed, err := repo.ListByUser(ctx, "user-1")
	rq.NoError(err)
	rq.NotEmpty(listed)
	rq.Equal(value.DecisionStop, listed[0].Decision)

	rq.NoError(repo.Delete(ctx, item.ID))

	_, err = repo.GetByID(ctx, item.ID)
	rq.Equal(errcodes.ItemNotFound, domain.GetCode(err))
}

func TestSettingsRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewSettingsRepository(testDB(t))

	rq.NoError(repo.Seed(ctx, entity.Settings{MinProfit: 500, SafetyBufferRate: 0.01}))

	got, err := repo.Get(ctx)
	rq.NoError(err)
	rq.NotNil(got)

	got.MinProfit = 750
	rq.NoError(repo.Put(ctx, got))

	got, err = repo.Get(ctx)
	rq.NoError(err)
	rq.Equal(int64(750), got.MinProfit)
}

func TestCommissionRateRepositoryFallback(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := testDB(t)
	repo := persistence.NewCommissionRateRepository(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO commission_rates (market, category, rate, fallback) VALUES
			('testmarket', 'electronics', 0.10, false),
			('testmarket', '*', 0.12, true)
		ON CONFLICT (market, category) DO NOTHING`)
	rq.NoError(err)

	rate, err := repo.GetRate(ctx, "testmarket", "electronics")
	rq.NoError(err)
	rq.InDelta(0.10, rate, 1e-9)

	_, err = repo.GetRate(ctx, "testmarket", "no-such-category")
	rq.Equal(errcodes.NotFound, domain.GetCode(err))

	rate, err = repo.GetFallbackRate(ctx, "testmarket")
	rq.NoError(err)
	rq.InDelta(0.12, rate, 1e-9)

	_, err = repo.GetFallbackRate(ctx, "no-such-market")
	rq.Equal(errcodes.MarketUnknown, domain.GetCode(err))
}

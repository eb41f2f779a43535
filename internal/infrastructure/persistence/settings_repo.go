package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
)

// SettingsRepository manages the single tenant-wide thresholds row.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	query := `SELECT min_profit, safety_buffer_rate, updated_at FROM settings WHERE id = 1`

	var schema settingsSchema
	if err := r.db.GetContext(ctx, &schema, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.SettingsNotFound, "settings not seeded")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get settings")
	}

	return schema.toDomain(), nil
}

// Put upserts the thresholds row. The id = 1 guard keeps it single.
func (r *SettingsRepository) Put(ctx context.Context, settings *entity.Settings) error {
	settings.UpdatedAt = time.Now()

	query := `
		INSERT INTO settings (id, min_profit, safety_buffer_rate, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			min_profit = EXCLUDED.min_profit,
			safety_buffer_rate = EXCLUDED.safety_buffer_rate,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		settings.MinProfit, settings.SafetyBufferRate, settings.UpdatedAt,
	); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to put settings")
	}

	return nil
}

// Seed writes the defaults only when no settings row exists yet.
func (r *SettingsRepository) Seed(ctx context.Context, defaults entity.Settings) error {
	query := `
		INSERT INTO settings (id, min_profit, safety_buffer_rate, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query,
		defaults.MinProfit, defaults.SafetyBufferRate, time.Now(),
	); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to seed settings")
	}

	return nil
}

package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/lox"
)

const itemColumns = `
	id, user_id, source_url, name, market, category, tax_type,
	buy_price, sell_price, shipping_fee,
	commission_rate, commission_fee, vat_fee, total_cost, profit, margin_rate,
	decision, reason, updated_at`

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create inserts a new item and assigns its identifier. The caller's entity
// is updated with the assigned ID.
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	item.ID = xid.New().String()
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO items (
			id, user_id, source_url, name, market, category, tax_type,
			buy_price, sell_price, shipping_fee,
			commission_rate, commission_fee, vat_fee, total_cost, profit, margin_rate,
			decision, reason, updated_at
		) VALUES (
			:id, :user_id, :source_url, :name, :market, :category, :tax_type,
			:buy_price, :sell_price, :shipping_fee,
			:commission_rate, :commission_fee, :vat_fee, :total_cost, :profit, :margin_rate,
			:decision, :reason, :updated_at
		)`

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, fromItem(item)); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert item")
		}
		return nil
	})
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var schema itemSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get item")
	}

	return schema.toDomain(), nil
}

// ListByUser returns the items owned by one user, newest first.
func (r *ItemRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 ORDER BY updated_at DESC`

	var schemas []itemSchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list items")
	}

	return lox.Map(schemas, func(s itemSchema) *entity.Item { return s.toDomain() }), nil
}

// ListAll returns every stored item. Used by admins and the monitor sweep.
func (r *ItemRepository) ListAll(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY updated_at DESC`

	var schemas []itemSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list items")
	}

	return lox.Map(schemas, func(s itemSchema) *entity.Item { return s.toDomain() }), nil
}

// Update persists the full item row, inputs and derived fields together.
func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()

	query := `
		UPDATE items SET
			source_url = :source_url,
			name = :name,
			market = :market,
			category = :category,
			tax_type = :tax_type,
			buy_price = :buy_price,
			sell_price = :sell_price,
			shipping_fee = :shipping_fee,
			commission_rate = :commission_rate,
			commission_fee = :commission_fee,
			vat_fee = :vat_fee,
			total_cost = :total_cost,
			profit = :profit,
			margin_rate = :margin_rate,
			decision = :decision,
			reason = :reason,
			updated_at = :updated_at
		WHERE id = :id`

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, fromItem(item))
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update item")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			return domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil
	})
}

// UpdateEvaluation rewrites only the derived fields. Used by the monitor so a
// sweep never touches user-entered inputs.
func (r *ItemRepository) UpdateEvaluation(ctx context.Context, id string, ev entity.Evaluation) error {
	query := `
		UPDATE items SET
			commission_rate = $1,
			commission_fee = $2,
			vat_fee = $3,
			total_cost = $4,
			profit = $5,
			margin_rate = $6,
			decision = $7,
			reason = $8,
			updated_at = $9
		WHERE id = $10`

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			ev.CommissionRate, ev.CommissionFee, ev.VATFee, ev.TotalCost,
			ev.Profit, ev.MarginRate, ev.Decision.String(), ev.Reason,
			time.Now(), id,
		)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update evaluation")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			return domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil
	})
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to delete item")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			return domain.NewError(errcodes.ItemNotFound, "item not found")
		}
		return nil
	})
}

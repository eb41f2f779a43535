package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
)

type DecisionLogRepository struct {
	db *sqlx.DB
}

func NewDecisionLogRepository(db *sqlx.DB) *DecisionLogRepository {
	return &DecisionLogRepository{db: db}
}

func (r *DecisionLogRepository) Create(ctx context.Context, log *entity.DecisionLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO decision_logs (item_id, from_decision, to_decision, reason, profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	if err := r.db.QueryRowxContext(ctx, query,
		log.ItemID, log.FromDecision.String(), log.ToDecision.String(),
		log.Reason, log.Profit, log.CreatedAt,
	).Scan(&log.ID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert decision log")
	}

	return nil
}

// ListByItem returns the flip history of one item, newest first.
func (r *DecisionLogRepository) ListByItem(ctx context.Context, itemID string, limit int) ([]entity.DecisionLog, error) {
	query := `
		SELECT id, item_id, from_decision, to_decision, reason, profit, created_at
		FROM decision_logs
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var logs []entity.DecisionLog
	if err := r.db.SelectContext(ctx, &logs, query, itemID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list decision logs")
	}

	return logs, nil
}

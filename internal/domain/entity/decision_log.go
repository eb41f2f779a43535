package entity

import (
	"time"

	"profitdesk/internal/domain/value"
)

// DecisionLog records one decision flip observed by the monitor.
type DecisionLog struct {
	ID           int64          `json:"id" db:"id"`
	ItemID       string         `json:"item_id" db:"item_id"`
	FromDecision value.Decision `json:"from_decision" db:"from_decision"`
	ToDecision   value.Decision `json:"to_decision" db:"to_decision"`
	Reason       string         `json:"reason" db:"reason"`
	Profit       int64          `json:"profit" db:"profit"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

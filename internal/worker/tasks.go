package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/value"
	"profitdesk/internal/metrics"
)

const TypeNotifyDecisionChange = "notify:decision_change"

const (
	notifyMaxRetry = 5
	notifyTimeout  = 30 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// DecisionChangePayload carries everything the notification needs, so the
// handler survives the item being edited or deleted before delivery.
type DecisionChangePayload struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name,omitempty"`
	Market       string `json:"market"`
	Category     string `json:"category"`
	FromDecision string `json:"from_decision"`
	ToDecision   string `json:"to_decision"`
	Profit       int64  `json:"profit"`
	Reason       string `json:"reason"`
}

func NewDecisionChangeTask(payload DecisionChangePayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeNotifyDecisionChange,
		raw,
		asynq.MaxRetry(notifyMaxRetry),
		asynq.Timeout(notifyTimeout),
	), nil
}

// Notifier delivers one decision change to the operations channel.
type Notifier interface {
	SendDecisionChange(ctx context.Context, item *entity.Item, log *entity.DecisionLog) error
}

type NotifyHandler struct {
	notifier Notifier
}

func NewNotifyHandler(notifier Notifier) *NotifyHandler {
	return &NotifyHandler{notifier: notifier}
}

func (h *NotifyHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload DecisionChangePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		metrics.NotificationsTotal.WithLabelValues("malformed").Inc()

		return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	item := &entity.Item{
		ID:       payload.ItemID,
		Name:     payload.ItemName,
		Market:   payload.Market,
		Category: payload.Category,
	}

	log := &entity.DecisionLog{
		ItemID:       payload.ItemID,
		FromDecision: value.Decision(payload.FromDecision),
		ToDecision:   value.Decision(payload.ToDecision),
		Reason:       payload.Reason,
		Profit:       payload.Profit,
	}

	if err := h.notifier.SendDecisionChange(ctx, item, log); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()

		return fmt.Errorf("notifier.SendDecisionChange: %w", err)
	}

	metrics.NotificationsTotal.WithLabelValues("sent").Inc()

	return nil
}

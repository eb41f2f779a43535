package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/internal/metrics"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

type ItemRepository interface {
	ListAll(ctx context.Context) ([]*entity.Item, error)
	UpdateEvaluation(ctx context.Context, id string, ev entity.Evaluation) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
}

type DecisionLogRepository interface {
	Create(ctx context.Context, log *entity.DecisionLog) error
}

// TaskEnqueuer hides the asynq client behind the one call the monitor makes.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) error
}

// Monitor periodically re-evaluates every tracked item against the current
// settings snapshot. One sweep reads settings once, so all items in a sweep
// see the same thresholds. A decision flip is logged and handed to the
// notification queue.
type Monitor struct {
	items    ItemRepository
	settings SettingsRepository
	logs     DecisionLogRepository
	engine   *profit.Engine
	enqueuer TaskEnqueuer

	interval time.Duration
}

func NewMonitor(
	items ItemRepository,
	settings SettingsRepository,
	logs DecisionLogRepository,
	engine *profit.Engine,
	enqueuer TaskEnqueuer,
) *Monitor {
	return &Monitor{
		items:    items,
		settings: settings,
		logs:     logs,
		engine:   engine,
		enqueuer: enqueuer,
		interval: time.Minute,
	}
}

func (m *Monitor) WithInterval(interval time.Duration) *Monitor {
	if interval > 0 {
		m.interval = interval
	}

	return m
}

func (m *Monitor) Run(ctx context.Context) error {
	logger(ctx).Info("monitor started", "interval", m.interval.String())

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("monitor stopped")

			return ctx.Err()
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Sweep re-evaluates all items once. Per-item failures are logged and
// skipped; one bad item must not stall the rest of the sweep.
func (m *Monitor) Sweep(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.MonitorSweepDuration.Observe(time.Since(start).Seconds())
	}()

	settings, err := m.settings.Get(ctx)
	if err != nil {
		logger(ctx).Error("settings.Get", logx.Error(err))

		return
	}

	th := profit.Thresholds{
		MinProfit:        settings.MinProfit,
		SafetyBufferRate: settings.SafetyBufferRate,
	}

	items, err := m.items.ListAll(ctx)
	if err != nil {
		logger(ctx).Error("items.ListAll", logx.Error(err))

		return
	}

	var flips int

	for _, item := range items {
		select {
		case <-ctx.Done():
			return
		default:
		}

		flipped, err := m.sweepOne(ctx, item, th)
		if err != nil {
			logger(ctx).Error("sweep item failed", "item_id", item.ID, logx.Error(err))

			continue
		}

		if flipped {
			flips++
		}
	}

	if flips > 0 {
		logger(ctx).Info("sweep completed", "items", len(items), "flips", flips)
	}
}

func (m *Monitor) sweepOne(ctx context.Context, item *entity.Item, th profit.Thresholds) (bool, error) {
	prev := item.Decision

	if err := m.engine.EvaluateItem(ctx, item, th); err != nil {
		return false, err
	}

	if err := m.items.UpdateEvaluation(ctx, item.ID, item.Evaluation); err != nil {
		return false, err
	}

	if prev == "" || prev == item.Decision {
		return false, nil
	}

	metrics.DecisionFlips.Inc()

	log := &entity.DecisionLog{
		ItemID:       item.ID,
		FromDecision: prev,
		ToDecision:   item.Decision,
		Reason:       item.Reason,
		Profit:       item.Profit,
	}

	if err := m.logs.Create(ctx, log); err != nil {
		return true, err
	}

	task, err := NewDecisionChangeTask(DecisionChangePayload{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Market:       item.Market,
		Category:     item.Category,
		FromDecision: string(prev),
		ToDecision:   string(item.Decision),
		Profit:       item.Profit,
		Reason:       item.Reason,
	})
	if err != nil {
		return true, err
	}

	if err = m.enqueuer.Enqueue(ctx, task); err != nil {
		return true, err
	}

	return true, nil
}

// AsynqEnqueuer is the production TaskEnqueuer.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	_, err := e.client.EnqueueContext(ctx, task)

	return err //nolint:wrapcheck
}

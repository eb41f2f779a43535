package worker

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/internal/domain/value"
)

type fakeMonitorItems struct {
	items   []*entity.Item
	updated map[string]entity.Evaluation
}

func (r *fakeMonitorItems) ListAll(context.Context) ([]*entity.Item, error) {
	list := make([]*entity.Item, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		list = append(list, &cp)
	}

	return list, nil
}

func (r *fakeMonitorItems) UpdateEvaluation(_ context.Context, id string, ev entity.Evaluation) error {
	if r.updated == nil {
		r.updated = map[string]entity.Evaluation{}
	}
	r.updated[id] = ev

	return nil
}

type fakeMonitorSettings struct {
	settings entity.Settings
}

func (r *fakeMonitorSettings) Get(context.Context) (*entity.Settings, error) {
	cp := r.settings

	return &cp, nil
}

type fakeLogRepo struct {
	logs []entity.DecisionLog
}

func (r *fakeLogRepo) Create(_ context.Context, log *entity.DecisionLog) error {
	r.logs = append(r.logs, *log)

	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, task *asynq.Task) error {
	e.tasks = append(e.tasks, task)

	return nil
}

type monitorResolver float64

func (r monitorResolver) ResolveCommissionRate(context.Context, string, string) (float64, error) {
	return float64(r), nil
}

func trackedItem(id string, sell int64, decision value.Decision) *entity.Item {
	return &entity.Item{
		ID:        id,
		UserID:    "user-1",
		Market:    "ebay",
		Category:  "electronics",
		TaxType:   value.TaxTypeTaxed,
		BuyPrice:  5000,
		SellPrice: sell,
		Evaluation: entity.Evaluation{
			Decision: decision,
		},
	}
}

func TestSweepRecomputesAndLogsFlips(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	ctx := context.Background()

	items := &fakeMonitorItems{items: []*entity.Item{
		trackedItem("flip", 5500, value.DecisionSell),
		trackedItem("hold", 10000, value.DecisionSell),
	}}
	settings := &fakeMonitorSettings{settings: entity.Settings{MinProfit: 500, SafetyBufferRate: 0.01}}
	logs := &fakeLogRepo{}
	enq := &fakeEnqueuer{}

	m := NewMonitor(items, settings, logs, profit.NewEngine(monitorResolver(0.10)), enq)
	m.Sweep(ctx)

	rq.Len(items.updated, 2)
	rq.Equal(value.DecisionStop, items.updated["flip"].Decision)
	rq.EqualValues(-105, items.updated["flip"].Profit)
	rq.Equal(value.DecisionSell, items.updated["hold"].Decision)

	rq.Len(logs.logs, 1)
	rq.Equal("flip", logs.logs[0].ItemID)
	rq.Equal(value.DecisionSell, logs.logs[0].FromDecision)
	rq.Equal(value.DecisionStop, logs.logs[0].ToDecision)

	rq.Len(enq.tasks, 1)
	rq.Equal(TypeNotifyDecisionChange, enq.tasks[0].Type())

	var payload DecisionChangePayload
	rq.NoError(json.Unmarshal(enq.tasks[0].Payload(), &payload))
	rq.Equal("flip", payload.ItemID)
	rq.Equal("STOP", payload.ToDecision)
	rq.EqualValues(-105, payload.Profit)
}

func TestSweepNoFlipNoNoise(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	items := &fakeMonitorItems{items: []*entity.Item{
		trackedItem("hold", 10000, value.DecisionSell),
	}}
	settings := &fakeMonitorSettings{settings: entity.Settings{MinProfit: 500, SafetyBufferRate: 0.01}}
	logs := &fakeLogRepo{}
	enq := &fakeEnqueuer{}

	m := NewMonitor(items, settings, logs, profit.NewEngine(monitorResolver(0.10)), enq)
	m.Sweep(context.Background())

	rq.Empty(logs.logs)
	rq.Empty(enq.tasks)
}

func TestSweepFirstEvaluationIsNotAFlip(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	fresh := trackedItem("fresh", 10000, "")

	items := &fakeMonitorItems{items: []*entity.Item{fresh}}
	settings := &fakeMonitorSettings{settings: entity.Settings{MinProfit: 500, SafetyBufferRate: 0.01}}
	logs := &fakeLogRepo{}
	enq := &fakeEnqueuer{}

	m := NewMonitor(items, settings, logs, profit.NewEngine(monitorResolver(0.10)), enq)
	m.Sweep(context.Background())

	rq.Equal(value.DecisionSell, items.updated["fresh"].Decision)
	rq.Empty(logs.logs)
	rq.Empty(enq.tasks)
}

func TestSweepThresholdChangeFlips(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	items := &fakeMonitorItems{items: []*entity.Item{
		trackedItem("edge", 10000, value.DecisionSell),
	}}
	// Raising min_profit above the item's profit flips it to STOP.
	settings := &fakeMonitorSettings{settings: entity.Settings{MinProfit: 4000, SafetyBufferRate: 0.01}}
	logs := &fakeLogRepo{}
	enq := &fakeEnqueuer{}

	m := NewMonitor(items, settings, logs, profit.NewEngine(monitorResolver(0.10)), enq)
	m.Sweep(context.Background())

	rq.Equal(value.DecisionStop, items.updated["edge"].Decision)
	rq.Len(logs.logs, 1)
}

type fakeNotifier struct {
	sent []DecisionChangePayload
	err  error
}

func (n *fakeNotifier) SendDecisionChange(_ context.Context, item *entity.Item, log *entity.DecisionLog) error {
	if n.err != nil {
		return n.err
	}

	n.sent = append(n.sent, DecisionChangePayload{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Market:       item.Market,
		Category:     item.Category,
		FromDecision: string(log.FromDecision),
		ToDecision:   string(log.ToDecision),
		Profit:       log.Profit,
		Reason:       log.Reason,
	})

	return nil
}

func TestNotifyHandler(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	task, err := NewDecisionChangeTask(DecisionChangePayload{
		ItemID:       "item-1",
		ItemName:     "widget",
		Market:       "ebay",
		Category:     "electronics",
		FromDecision: "SELL",
		ToDecision:   "STOP",
		Profit:       -105,
		Reason:       "profit -105 falls short of required 605 by 710",
	})
	rq.NoError(err)

	notifier := &fakeNotifier{}
	handler := NewNotifyHandler(notifier)

	rq.NoError(handler.Handle(context.Background(), task))
	rq.Len(notifier.sent, 1)
	rq.Equal("item-1", notifier.sent[0].ItemID)
	rq.Equal("STOP", notifier.sent[0].ToDecision)
}

func TestNotifyHandlerMalformedPayload(t *testing.T) {
	t.Parallel()

	rq := require.New(t)

	task := asynq.NewTask(TypeNotifyDecisionChange, []byte("{not json"))
	handler := NewNotifyHandler(&fakeNotifier{})

	err := handler.Handle(context.Background(), task)
	rq.Error(err)
	rq.ErrorIs(err, asynq.SkipRetry)
}

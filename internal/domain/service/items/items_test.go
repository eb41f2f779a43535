package items

import (
	"context"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
)

type fakeItemRepo struct {
	rows map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{rows: map[string]*entity.Item{}}
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	item.ID = xid.New().String()
	cp := *item
	r.rows[item.ID] = &cp

	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	item, ok := r.rows[id]
	if !ok {
		return nil, domain.NewError(errcodes.ItemNotFound, "item not found")
	}

	cp := *item

	return &cp, nil
}

func (r *fakeItemRepo) ListByUser(_ context.Context, userID string) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, item := range r.rows {
		if item.UserID == userID {
			cp := *item
			list = append(list, &cp)
		}
	}

	return list, nil
}

func (r *fakeItemRepo) ListAll(_ context.Context) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, item := range r.rows {
		cp := *item
		list = append(list, &cp)
	}

	return list, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	if _, ok := r.rows[item.ID]; !ok {
		return domain.NewError(errcodes.ItemNotFound, "item not found")
	}

	cp := *item
	r.rows[item.ID] = &cp

	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.rows, id)

	return nil
}

type fakeSettingsRepo struct {
	settings entity.Settings
}

func (r *fakeSettingsRepo) Get(context.Context) (*entity.Settings, error) {
	cp := r.settings

	return &cp, nil
}

func (r *fakeSettingsRepo) Put(_ context.Context, settings *entity.Settings) error {
	r.settings = *settings

	return nil
}

type staticResolver float64

func (r staticResolver) ResolveCommissionRate(context.Context, string, string) (float64, error) {
	return float64(r), nil
}

func newTestService() (*Service, *fakeItemRepo) {
	repo := newFakeItemRepo()
	settings := &fakeSettingsRepo{settings: entity.Settings{
		MinProfit:        500,
		SafetyBufferRate: 0.01,
		UpdatedAt:        time.Now().UTC(),
	}}
	engine := profit.NewEngine(staticResolver(0.10))

	return NewService(repo, settings, engine), repo
}

func TestCreateEvaluatesItem(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	svc, _ := newTestService()

	item, err := svc.Create(context.Background(), "user-1", "https://example.com/x", "widget", profit.RawInput{
		BuyPrice:  5000,
		SellPrice: 10000,
		Market:    "ebay",
		Category:  "electronics",
	})
	rq.NoError(err)
	rq.NotEmpty(item.ID)
	rq.EqualValues(1000, item.CommissionFee)
	rq.EqualValues(100, item.VATFee)
	rq.EqualValues(6100, item.TotalCost)
	rq.EqualValues(3900, item.Profit)
	rq.Equal("SELL", string(item.Decision))
}

func TestListScopedByRole(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	svc, _ := newTestService()
	ctx := context.Background()

	raw := profit.RawInput{BuyPrice: 100, SellPrice: 300, Market: "ebay", Category: "books"}

	_, err := svc.Create(ctx, "user-1", "", "", raw)
	rq.NoError(err)
	_, err = svc.Create(ctx, "user-2", "", "", raw)
	rq.NoError(err)

	mine, err := svc.List(ctx, "user-1", contextx.RoleUser)
	rq.NoError(err)
	rq.Len(mine, 1)

	all, err := svc.List(ctx, "user-1", contextx.RoleAdmin)
	rq.NoError(err)
	rq.Len(all, 2)
}

func TestUpdateMergePatch(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	svc, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "user-1", "", "widget", profit.RawInput{
		BuyPrice:  5000,
		SellPrice: 10000,
		Market:    "ebay",
		Category:  "electronics",
	})
	rq.NoError(err)

	updated, err := svc.Update(ctx, item.ID, "user-1", contextx.RoleUser, Patch{
		SellPrice: 5500,
	})
	rq.NoError(err)
	rq.EqualValues(5000, updated.BuyPrice)
	rq.EqualValues(5500, updated.SellPrice)
	rq.EqualValues(-105, updated.Profit)
	rq.Equal("STOP", string(updated.Decision))
	rq.Equal("widget", updated.Name)
}

func TestOwnershipEnforced(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	svc, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, "user-1", "", "", profit.RawInput{
		BuyPrice:  100,
		SellPrice: 300,
		Market:    "ebay",
		Category:  "books",
	})
	rq.NoError(err)

	_, err = svc.Get(ctx, item.ID, "user-2", contextx.RoleUser)
	rq.Equal(errcodes.Forbidden, domain.GetCode(err))

	err = svc.Delete(ctx, item.ID, "user-2", contextx.RoleUser)
	rq.Equal(errcodes.Forbidden, domain.GetCode(err))

	_, err = svc.Get(ctx, item.ID, "user-2", contextx.RoleAdmin)
	rq.NoError(err)

	rq.NoError(svc.Delete(ctx, item.ID, "user-1", contextx.RoleUser))

	_, err = svc.Get(ctx, item.ID, "user-1", contextx.RoleUser)
	rq.Equal(errcodes.ItemNotFound, domain.GetCode(err))
}

func TestEvaluateUsesSettingsSnapshot(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	svc, _ := newTestService()

	ev, err := svc.Evaluate(context.Background(), profit.RawInput{
		BuyPrice:  "5000",
		SellPrice: "5500",
		Market:    "ebay",
		Category:  "electronics",
	})
	rq.NoError(err)
	rq.EqualValues(-105, ev.Profit)
	rq.Equal("STOP", string(ev.Decision))
}

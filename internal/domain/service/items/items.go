package items

import (
	"context"
	"fmt"
	"time"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Item, error)
	ListAll(ctx context.Context) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Put(ctx context.Context, settings *entity.Settings) error
}

// Patch is a merge update: nil pointers and nil amounts keep the stored
// values. Amounts stay untyped and pass through the input normalizer.
type Patch struct {
	SourceURL   *string
	Name        *string
	BuyPrice    any
	SellPrice   any
	ShippingFee any
	Market      *string
	Category    *string
	TaxType     *string
}

// Service owns tracked items. Every write re-evaluates the item against the
// current settings snapshot, so stored derived fields never lag their inputs.
type Service struct {
	items    ItemRepository
	settings SettingsRepository
	engine   *profit.Engine
}

func NewService(items ItemRepository, settings SettingsRepository, engine *profit.Engine) *Service {
	return &Service{
		items:    items,
		settings: settings,
		engine:   engine,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID, sourceURL, name string,
	raw profit.RawInput,
) (*entity.Item, error) {
	in, err := profit.Normalize(raw)
	if err != nil {
		return nil, err
	}

	th, err := s.thresholds(ctx)
	if err != nil {
		return nil, err
	}

	ev, err := s.engine.EvaluateInput(ctx, in, th)
	if err != nil {
		return nil, err
	}

	item := &entity.Item{
		UserID:      userID,
		SourceURL:   sourceURL,
		Name:        name,
		Market:      in.Market,
		Category:    in.Category,
		TaxType:     in.TaxType,
		BuyPrice:    in.BuyPrice,
		SellPrice:   in.SellPrice,
		ShippingFee: in.ShippingFee,
		Evaluation:  ev,
		UpdatedAt:   time.Now().UTC(),
	}

	if err = s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("items.Create: %w", err)
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id, userID string, role contextx.Role) (*entity.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("items.GetByID: %w", err)
	}

	if err = authorize(item, userID, role); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) List(ctx context.Context, userID string, role contextx.Role) ([]*entity.Item, error) {
	if role == contextx.RoleAdmin {
		list, err := s.items.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("items.ListAll: %w", err)
		}

		return list, nil
	}

	list, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("items.ListByUser: %w", err)
	}

	return list, nil
}

// Update applies a merge patch, re-normalizes the merged inputs and
// re-evaluates before persisting the full row.
func (s *Service) Update(
	ctx context.Context,
	id, userID string,
	role contextx.Role,
	patch Patch,
) (*entity.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("items.GetByID: %w", err)
	}

	if err = authorize(item, userID, role); err != nil {
		return nil, err
	}

	raw := mergedInput(item, patch)

	in, err := profit.Normalize(raw)
	if err != nil {
		return nil, err
	}

	th, err := s.thresholds(ctx)
	if err != nil {
		return nil, err
	}

	ev, err := s.engine.EvaluateInput(ctx, in, th)
	if err != nil {
		return nil, err
	}

	if patch.SourceURL != nil {
		item.SourceURL = *patch.SourceURL
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}

	item.Market = in.Market
	item.Category = in.Category
	item.TaxType = in.TaxType
	item.BuyPrice = in.BuyPrice
	item.SellPrice = in.SellPrice
	item.ShippingFee = in.ShippingFee
	item.Evaluation = ev
	item.UpdatedAt = time.Now().UTC()

	if err = s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("items.Update: %w", err)
	}

	return item, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string, role contextx.Role) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("items.GetByID: %w", err)
	}

	if err = authorize(item, userID, role); err != nil {
		return err
	}

	if err = s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("items.Delete: %w", err)
	}

	return nil
}

// Evaluate runs one stateless evaluation against the current settings.
func (s *Service) Evaluate(ctx context.Context, raw profit.RawInput) (entity.Evaluation, error) {
	th, err := s.thresholds(ctx)
	if err != nil {
		return entity.Evaluation{}, err
	}

	return s.engine.Evaluate(ctx, raw, th)
}

func (s *Service) thresholds(ctx context.Context) (profit.Thresholds, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return profit.Thresholds{}, fmt.Errorf("settings.Get: %w", err)
	}

	return profit.Thresholds{
		MinProfit:        settings.MinProfit,
		SafetyBufferRate: settings.SafetyBufferRate,
	}, nil
}

func authorize(item *entity.Item, userID string, role contextx.Role) error {
	if role == contextx.RoleAdmin || item.UserID == userID {
		return nil
	}

	return domain.NewError(errcodes.Forbidden, "item belongs to another user")
}

func mergedInput(item *entity.Item, patch Patch) profit.RawInput {
	raw := profit.RawInput{
		BuyPrice:    item.BuyPrice,
		SellPrice:   item.SellPrice,
		ShippingFee: item.ShippingFee,
		Market:      item.Market,
		Category:    item.Category,
		TaxType:     string(item.TaxType),
	}

	if patch.BuyPrice != nil {
		raw.BuyPrice = patch.BuyPrice
	}

	if patch.SellPrice != nil {
		raw.SellPrice = patch.SellPrice
	}

	if patch.ShippingFee != nil {
		raw.ShippingFee = patch.ShippingFee
	}

	if patch.Market != nil {
		raw.Market = *patch.Market
	}

	if patch.Category != nil {
		raw.Category = *patch.Category
	}

	if patch.TaxType != nil {
		raw.TaxType = *patch.TaxType
	}

	return raw
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/httpx/reply"
	"profitdesk/pkg/httpx/req"
	"profitdesk/pkg/lox"
	"profitdesk/pkg/rest"
)

type settingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Put(ctx context.Context, settings *entity.Settings) error
}

type rateRepository interface {
	ListByMarket(ctx context.Context, market string) ([]entity.CommissionRate, error)
}

type SettingsServer struct {
	settings settingsRepository
	rates    rateRepository
}

func NewSettingsServer(settings settingsRepository, rates rateRepository) SettingsServer {
	return SettingsServer{
		settings: settings,
		rates:    rates,
	}
}

func (s SettingsServer) getV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return asFailure(fmt.Errorf("settings.Get: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s SettingsServer) putV1Settings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.UpdateSettingsRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	settings := &entity.Settings{
		MinProfit:        request.MinProfit,
		SafetyBufferRate: request.SafetyBufferRate,
		UpdatedAt:        time.Now().UTC(),
	}

	if err := s.settings.Put(ctx, settings); err != nil {
		return asFailure(fmt.Errorf("settings.Put: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSettings(settings))

	return nil
}

func (s SettingsServer) getV1MarketCategories(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	market := chi.URLParam(r, "market")
	if market == "" {
		return asFailure(domain.NewError(errcodes.MarketUnknown, "market is required"))
	}

	rates, err := s.rates.ListByMarket(ctx, market)
	if err != nil {
		return asFailure(fmt.Errorf("rates.ListByMarket: %w", err))
	}

	if len(rates) == 0 {
		return asFailure(domain.NewError(
			errcodes.MarketUnknown,
			fmt.Sprintf("no commission rates configured for market %q", market),
		))
	}

	categories := lox.Map(rates, func(rate entity.CommissionRate) rest.Category {
		return rest.Category{
			Category: rate.Category,
			Rate:     rate.Rate,
			Fallback: rate.Fallback,
		}
	})

	reply.JSON(ctx, w, http.StatusOK, categories)

	return nil
}

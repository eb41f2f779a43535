package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"profitdesk/internal/domain"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/items"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/internal/metrics"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/httpx/reply"
	"profitdesk/pkg/httpx/req"
	"profitdesk/pkg/rest"
)

const decisionLogLimit = 100

type itemService interface {
	Create(ctx context.Context, userID, sourceURL, name string, raw profit.RawInput) (*entity.Item, error)
	Get(ctx context.Context, id, userID string, role contextx.Role) (*entity.Item, error)
	List(ctx context.Context, userID string, role contextx.Role) ([]*entity.Item, error)
	Update(ctx context.Context, id, userID string, role contextx.Role, patch items.Patch) (*entity.Item, error)
	Delete(ctx context.Context, id, userID string, role contextx.Role) error
	Evaluate(ctx context.Context, raw profit.RawInput) (entity.Evaluation, error)
}

type decisionLogRepository interface {
	ListByItem(ctx context.Context, itemID string, limit int) ([]entity.DecisionLog, error)
}

type ItemServer struct {
	itemService  itemService
	decisionLogs decisionLogRepository
}

func NewItemServer(itemService itemService, decisionLogs decisionLogRepository) ItemServer {
	return ItemServer{
		itemService:  itemService,
		decisionLogs: decisionLogs,
	}
}

func (s ItemServer) getV1Items(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}

	list, err := s.itemService.List(ctx, userID, role)
	if err != nil {
		return asFailure(fmt.Errorf("itemService.List: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItems(list))

	return nil
}

func (s ItemServer) getV1Item(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}

	id, err := itemID(r)
	if err != nil {
		return err
	}

	item, err := s.itemService.Get(ctx, id, userID, role)
	if err != nil {
		return asFailure(fmt.Errorf("itemService.Get: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTItem(item))

	return nil
}

func (s ItemServer) postV1Items(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, _, err := caller(ctx)
	if err != nil {
		return err
	}

	var request rest.CreateItemRequest
	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	item, err := s.itemService.Create(ctx, userID, request.SourceURL, request.Name, newCreateInput(request))
	if err != nil {
		return asFailure(fmt.Errorf("itemService.Create: %w", err))
	}

	metrics.EvaluationsTotal.WithLabelValues(item.Decision.String()).Inc()

	reply.JSON(ctx, w, http.StatusCreated, newRESTItem(item))

	return nil
}

func (s ItemServer) patchV1Item(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}

	id, err := itemID(r)
	if err != nil {
		return err
	}

	var request rest.UpdateItemRequest
	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	item, err := s.itemService.Update(ctx, id, userID, role, newPatch(request))
	if err != nil {
		return asFailure(fmt.Errorf("itemService.Update: %w", err))
	}

	metrics.EvaluationsTotal.WithLabelValues(item.Decision.String()).Inc()

	reply.JSON(ctx, w, http.StatusOK, newRESTItem(item))

	return nil
}

func (s ItemServer) deleteV1Item(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}

	id, err := itemID(r)
	if err != nil {
		return err
	}

	if err = s.itemService.Delete(ctx, id, userID, role); err != nil {
		return asFailure(fmt.Errorf("itemService.Delete: %w", err))
	}

	reply.OK(w)

	return nil
}

func (s ItemServer) getV1ItemLogs(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}

	id, err := itemID(r)
	if err != nil {
		return err
	}

	// ownership check rides on the item lookup
	if _, err = s.itemService.Get(ctx, id, userID, role); err != nil {
		return asFailure(fmt.Errorf("itemService.Get: %w", err))
	}

	logs, err := s.decisionLogs.ListByItem(ctx, id, decisionLogLimit)
	if err != nil {
		return asFailure(fmt.Errorf("decisionLogs.ListByItem: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDecisionLogs(logs))

	return nil
}

func (s ItemServer) postV1Evaluate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.EvaluateRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	ev, err := s.itemService.Evaluate(ctx, newRawInput(request))
	if err != nil {
		metrics.EvaluationErrors.Inc()

		return asFailure(fmt.Errorf("itemService.Evaluate: %w", err))
	}

	metrics.EvaluationsTotal.WithLabelValues(ev.Decision.String()).Inc()

	reply.JSON(ctx, w, http.StatusOK, newRESTEvaluation(ev))

	return nil
}

func caller(ctx context.Context) (string, contextx.Role, error) {
	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return "", "", asFailure(domain.NewError(errcodes.Unauthorized, "missing authenticated user"))
	}

	role, err := contextx.RoleFromContext(ctx)
	if err != nil {
		return "", "", asFailure(domain.NewError(errcodes.CodeNotVerified, "personal code not verified"))
	}

	return userID.String(), role, nil
}

func itemID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", asFailure(domain.NewError(errcodes.InvalidItemID, "item id is required"))
	}

	return id, nil
}

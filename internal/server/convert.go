package server

import (
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/items"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/pkg/lox"
	"profitdesk/pkg/rest"
)

func newRESTEvaluation(ev entity.Evaluation) rest.Evaluation {
	return rest.Evaluation{
		CommissionRate: ev.CommissionRate,
		CommissionFee:  ev.CommissionFee,
		VATFee:         ev.VATFee,
		TotalCost:      ev.TotalCost,
		Profit:         ev.Profit,
		MarginRate:     ev.MarginRate,
		Decision:       ev.Decision.String(),
		Reason:         ev.Reason,
	}
}

func newRESTItem(item *entity.Item) rest.Item {
	return rest.Item{
		ID:          item.ID,
		SourceURL:   item.SourceURL,
		Name:        item.Name,
		Market:      item.Market,
		Category:    item.Category,
		TaxType:     item.TaxType.String(),
		BuyPrice:    item.BuyPrice,
		SellPrice:   item.SellPrice,
		ShippingFee: item.ShippingFee,
		Evaluation:  newRESTEvaluation(item.Evaluation),
		UpdatedAt:   item.UpdatedAt,
	}
}

func newRESTItems(list []*entity.Item) []rest.Item {
	return lox.Map(list, func(item *entity.Item) rest.Item {
		return newRESTItem(item)
	})
}

func newRESTDecisionLogs(logs []entity.DecisionLog) []rest.DecisionLog {
	return lox.Map(logs, func(log entity.DecisionLog) rest.DecisionLog {
		return rest.DecisionLog{
			ID:           log.ID,
			ItemID:       log.ItemID,
			FromDecision: log.FromDecision.String(),
			ToDecision:   log.ToDecision.String(),
			Reason:       log.Reason,
			Profit:       log.Profit,
			CreatedAt:    log.CreatedAt,
		}
	})
}

func newRESTSettings(settings *entity.Settings) rest.Settings {
	return rest.Settings{
		MinProfit:        settings.MinProfit,
		SafetyBufferRate: settings.SafetyBufferRate,
		UpdatedAt:        settings.UpdatedAt,
	}
}

func newRawInput(req rest.EvaluateRequest) profit.RawInput {
	return profit.RawInput{
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		ShippingFee: req.ShippingFee,
		Market:      req.Market,
		Category:    req.Category,
		TaxType:     req.TaxType,
	}
}

func newCreateInput(req rest.CreateItemRequest) profit.RawInput {
	return profit.RawInput{
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		ShippingFee: req.ShippingFee,
		Market:      req.Market,
		Category:    req.Category,
		TaxType:     req.TaxType,
	}
}

func newPatch(req rest.UpdateItemRequest) items.Patch {
	return items.Patch{
		SourceURL:   req.SourceURL,
		Name:        req.Name,
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		ShippingFee: req.ShippingFee,
		Market:      req.Market,
		Category:    req.Category,
		TaxType:     req.TaxType,
	}
}

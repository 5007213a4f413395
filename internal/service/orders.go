package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/events"
	"github.com/ldelvaux/pcforge/internal/logging"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

type CheckoutLine struct {
	ConfigurationID uint `json:"configuration_id"`
	Quantity        int  `json:"quantity"`
}

type CheckoutRequest struct {
	Lines []CheckoutLine `json:"lines"`
}

// LineResult reports what happened to one checkout line. On a failed
// checkout, lines after the first failure carry status "not attempted".
type LineResult struct {
	ConfigurationID uint   `json:"configuration_id"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	OrderID         uint   `json:"order_id,omitempty"`
}

type CheckoutResult struct {
	Orders []models.Order `json:"orders,omitempty"`
	Lines  []LineResult   `json:"lines"`
}

var errLineFailed = errors.New("checkout line failed")

// Checkout turns a whole cart into orders in one transaction. Prices are
// recomputed from the current component rows, stock is decremented per unit,
// and any failing line rolls everything back.
func (s *OrderService) Checkout(ctx context.Context, callerID uint, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: lines required", ErrValidation)
	}
	for _, line := range req.Lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
		}
	}

	result := &CheckoutResult{Lines: make([]LineResult, len(req.Lines))}
	for i, line := range req.Lines {
		result.Lines[i] = LineResult{ConfigurationID: line.ConfigurationID, Status: "not attempted"}
	}

	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		for i, line := range req.Lines {
			order, reason, err := s.checkoutLine(ctx, tx, callerID, line)
			if err != nil {
				return err
			}
			if reason != "" {
				result.Lines[i].Status = "failed"
				result.Lines[i].Reason = reason
				return errLineFailed
			}
			result.Lines[i].Status = "ok"
			result.Lines[i].OrderID = order.ID
			result.Orders = append(result.Orders, *order)
		}
		return nil
	})
	if err != nil {
		result.Orders = nil
		if errors.Is(err, errLineFailed) {
			return result, fmt.Errorf("%w: checkout failed", ErrValidation)
		}
		return nil, err
	}

	for i := range result.Orders {
		event := map[string]any{
			"type":            "order_created",
			"orderID":         result.Orders[i].ID,
			"userID":          callerID,
			"configurationID": result.Orders[i].ConfigurationID,
			"lineTotal":       result.Orders[i].LineTotal.StringFixed(2),
		}
		if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(result.Orders[i].ID), event); err != nil {
			logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
		}
	}

	return result, nil
}

// checkoutLine creates one order within the transaction. A business-rule
// failure comes back as a reason string; only infrastructure errors return
// as errors.
func (s *OrderService) checkoutLine(ctx context.Context, tx *repo.GormRepo, callerID uint, line CheckoutLine) (*models.Order, string, error) {
	cfg, err := tx.GetConfiguration(ctx, line.ConfigurationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Sprintf("configuration %d does not exist", line.ConfigurationID), nil
		}
		return nil, "", err
	}
	if cfg.UserID != callerID {
		return nil, fmt.Sprintf("configuration %d does not belong to the caller", line.ConfigurationID), nil
	}
	if len(cfg.Components) == 0 {
		return nil, fmt.Sprintf("configuration %d has no components", line.ConfigurationID), nil
	}

	for _, comp := range cfg.Components {
		if err := tx.DecrementStock(ctx, comp.ID, line.Quantity); err != nil {
			if errors.Is(err, repo.ErrInsufficientStock) || errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Sprintf("component %d: insufficient stock", comp.ID), nil
			}
			return nil, "", err
		}
	}

	unitPrice := TotalPrice(cfg.Components)
	order := &models.Order{
		Reference:       uuid.NewString(),
		UserID:          callerID,
		ConfigurationID: cfg.ID,
		UnitPrice:       unitPrice,
		Quantity:        line.Quantity,
		LineTotal:       unitPrice.Mul(decimalFromInt(line.Quantity)).Round(2),
		Status:          models.OrderStatusNew,
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		return nil, "", err
	}
	return order, "", nil
}

func (s *OrderService) GetOrder(ctx context.Context, id, callerID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	if order.UserID != callerID && !isAdmin {
		return nil, fmt.Errorf("%w: order %d", ErrForbidden, id)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

type UpdateOrderRequest struct {
	ID       uint   `json:"id"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// UpdateOrder is admin-only plumbing; the line total follows the snapshot
// unit price, never a client-submitted figure.
func (s *OrderService) UpdateOrder(ctx context.Context, pathID uint, req UpdateOrderRequest) (*models.Order, error) {
	if req.ID != pathID {
		return nil, fmt.Errorf("%w: id mismatch", ErrValidation)
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	if req.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	order, err := s.Repo.GetOrder(ctx, pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, pathID)
		}
		return nil, err
	}

	order.Quantity = req.Quantity
	order.Status = req.Status
	order.LineTotal = order.UnitPrice.Mul(decimalFromInt(req.Quantity)).Round(2)

	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

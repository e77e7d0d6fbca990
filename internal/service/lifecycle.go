package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/pkg/errors"
)

// LifecycleService is the negotiation state machine. Every action validates
// its precondition against the entity the caller holds, submits a single
// set-status request to the backend store, and confirms the result by
// renormalizing the store's response (or refetching when the store returns
// no record). Actions never mutate the entity they were given; callers must
// replace their reference with the returned one.
type LifecycleService struct {
	store  backend.Store
	feed   *FeedService
	logger *zap.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(store backend.Store, feed *FeedService, logger *zap.Logger) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{store: store, feed: feed, logger: logger}
}

// SendQuote submits admin pricing for a quotation. Allowed from
// quote_requested and negotiation; moves the quotation to quote_sent.
func (s *LifecycleService) SendQuote(ctx context.Context, entity *domain.UnifiedOrder, req SendQuoteRequest) (*domain.UnifiedOrder, error) {
	const action = "sendQuote"
	if entity.SourceKind != domain.SourceQuotation ||
		(entity.Status != domain.StatusQuoteRequested && entity.Status != domain.StatusNegotiation) {
		return nil, &errors.ErrInvalidStateTransition{Action: action, Kind: entity.SourceKind, From: entity.Status}
	}
	if len(req.Lines) == 0 {
		return nil, &errors.ErrValidation{Message: "quote requires at least one line"}
	}

	products := make([]domain.RawQuotationLine, len(req.Lines))
	for i, line := range req.Lines {
		quoted := line.QuotedPrice
		products[i] = domain.RawQuotationLine{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			TargetPrice: line.TargetPrice,
			QuotedPrice: &quoted,
		}
	}
	return s.submitQuotation(ctx, action, entity, domain.StatusQuoteSent, products, req.Notes)
}

// AcceptQuoteRequest books a freshly requested quotation at the customer's
// own numbers: every line's quoted price is set to its target price.
func (s *LifecycleService) AcceptQuoteRequest(ctx context.Context, entity *domain.UnifiedOrder, notes *string) (*domain.UnifiedOrder, error) {
	return s.accept(ctx, "acceptQuoteRequest", entity, domain.StatusQuoteRequested, notes)
}

// AcceptCounter books a quotation under negotiation, accepting the
// customer's counter: quoted prices are set to the target prices.
func (s *LifecycleService) AcceptCounter(ctx context.Context, entity *domain.UnifiedOrder, notes *string) (*domain.UnifiedOrder, error) {
	return s.accept(ctx, "acceptCounter", entity, domain.StatusNegotiation, notes)
}

// RejectQuoteRequest rejects a freshly requested quotation.
func (s *LifecycleService) RejectQuoteRequest(ctx context.Context, entity *domain.UnifiedOrder, reason *string) (*domain.UnifiedOrder, error) {
	return s.reject(ctx, "rejectQuoteRequest", entity, domain.StatusQuoteRequested, reason)
}

// RejectCounter rejects a quotation under negotiation.
//
// There is deliberately no counter-counter path from negotiation back to
// quote_sent: the admin can only accept, reject, or send final pricing. The
// negotiation caps at one customer counter.
func (s *LifecycleService) RejectCounter(ctx context.Context, entity *domain.UnifiedOrder, reason *string) (*domain.UnifiedOrder, error) {
	return s.reject(ctx, "rejectCounter", entity, domain.StatusNegotiation, reason)
}

func (s *LifecycleService) accept(ctx context.Context, action string, entity *domain.UnifiedOrder, from domain.UnifiedStatus, notes *string) (*domain.UnifiedOrder, error) {
	if entity.SourceKind != domain.SourceQuotation || entity.Status != from {
		return nil, &errors.ErrInvalidStateTransition{Action: action, Kind: entity.SourceKind, From: entity.Status}
	}
	return s.submitQuotation(ctx, action, entity, domain.StatusOrderBooked, linesAtTargetPrice(entity), notes)
}

func (s *LifecycleService) reject(ctx context.Context, action string, entity *domain.UnifiedOrder, from domain.UnifiedStatus, reason *string) (*domain.UnifiedOrder, error) {
	if entity.SourceKind != domain.SourceQuotation || entity.Status != from {
		return nil, &errors.ErrInvalidStateTransition{Action: action, Kind: entity.SourceKind, From: entity.Status}
	}
	return s.submitQuotation(ctx, action, entity, domain.StatusRejected, nil, reason)
}

// UpdateOrderStatus moves a firm order along its fulfillment stages. The
// submitted backend status goes through the stage-submission remap
// (processing reports as PAID).
func (s *LifecycleService) UpdateOrderStatus(ctx context.Context, entity *domain.UnifiedOrder, target domain.UnifiedStatus, note *string) (*domain.UnifiedOrder, error) {
	const action = "updateOrderStatus"
	if entity.SourceKind != domain.SourceOrder || entity.Status.IsTerminal() {
		return nil, &errors.ErrInvalidStateTransition{Action: action, Kind: entity.SourceKind, From: entity.Status}
	}

	backendStatus := domain.ToRawOrderStatus(target)
	s.logger.Info("Submitting order status",
		zap.String("order_id", entity.ID),
		zap.String("status", backendStatus),
	)
	raw, err := s.store.SubmitOrderStatus(ctx, entity.ID, backendStatus, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	if raw != nil {
		updated := NormalizeOrder(*raw)
		return &updated, nil
	}
	return s.confirmByLookup(ctx, action, entity)
}

// submitQuotation performs a quotation update and confirms the new state.
func (s *LifecycleService) submitQuotation(ctx context.Context, action string, entity *domain.UnifiedOrder, target domain.UnifiedStatus, products []domain.RawQuotationLine, notes *string) (*domain.UnifiedOrder, error) {
	status := domain.ToRawQuotationStatus(target)
	update := backend.QuotationUpdate{
		Status:   &status,
		Products: products,
		Notes:    notes,
	}

	s.logger.Info("Submitting quotation update",
		zap.String("action", action),
		zap.String("quotation_id", entity.ID),
		zap.String("status", status),
	)
	raw, err := s.store.SubmitQuotationUpdate(ctx, entity.ID, update)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	if raw != nil {
		updated := NormalizeQuotation(*raw)
		return &updated, nil
	}
	return s.confirmByLookup(ctx, action, entity)
}

// confirmByLookup is the fallback when the store acknowledges a write
// without echoing the record: refetch the full feed and locate the entity
// by id or display number. When that also fails the action reports failure
// rather than guessing at the new state.
func (s *LifecycleService) confirmByLookup(ctx context.Context, action string, entity *domain.UnifiedOrder) (*domain.UnifiedOrder, error) {
	updated, err := s.feed.FindByIDOrNumber(ctx, entity.ID)
	if err == nil {
		return updated, nil
	}
	if _, ok := err.(*errors.ErrLookupNotFound); ok {
		updated, err = s.feed.FindByIDOrNumber(ctx, entity.DisplayNumber)
		if err == nil {
			return updated, nil
		}
	}
	s.logger.Error("Could not confirm entity state after action",
		zap.String("action", action),
		zap.String("id", entity.ID),
		zap.Error(err),
	)
	return nil, fmt.Errorf("%s: %w", action, err)
}

// linesAtTargetPrice rebuilds the product list with every quoted price set
// to the line's target price.
func linesAtTargetPrice(entity *domain.UnifiedOrder) []domain.RawQuotationLine {
	products := make([]domain.RawQuotationLine, len(entity.LineItems))
	for i, item := range entity.LineItems {
		target := item.UnitPrice
		if item.TargetPrice != nil {
			target = *item.TargetPrice
		}
		quoted := target
		products[i] = domain.RawQuotationLine{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			TargetPrice: target,
			QuotedPrice: &quoted,
		}
	}
	return products
}

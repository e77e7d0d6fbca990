package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/pkg/errors"
)

// FeedService produces the merged, reverse-chronological feed of orders and
// quotations.
type FeedService struct {
	store  backend.Store
	logger *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(store backend.Store, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{store: store, logger: logger}
}

// ListUnified fetches both collections concurrently, normalizes them, and
// returns one feed sorted by UpdatedAt descending (ties keep fetch order,
// orders before quotations). All-or-nothing: if either fetch fails the
// whole call fails; the feed never silently drops a collection.
func (s *FeedService) ListUnified(ctx context.Context) ([]domain.UnifiedOrder, error) {
	type ordersResult struct {
		orders []domain.RawOrder
		err    error
	}
	type quotationsResult struct {
		quotations []domain.RawQuotation
		err        error
	}

	ordersCh := make(chan ordersResult, 1)
	quotationsCh := make(chan quotationsResult, 1)

	go func() {
		orders, err := s.store.FetchOrders(ctx)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		quotations, err := s.store.FetchQuotations(ctx)
		quotationsCh <- quotationsResult{quotations, err}
	}()

	or := <-ordersCh
	qr := <-quotationsCh
	if or.err != nil {
		return nil, or.err
	}
	if qr.err != nil {
		return nil, qr.err
	}

	unified := make([]domain.UnifiedOrder, 0, len(or.orders)+len(qr.quotations))
	for _, raw := range or.orders {
		unified = append(unified, NormalizeOrder(raw))
	}
	for _, raw := range qr.quotations {
		unified = append(unified, NormalizeQuotation(raw))
	}

	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].UpdatedAt.After(unified[j].UpdatedAt)
	})
	return unified, nil
}

// ListOrders is the order-only read path. Unlike the merged feed, a
// transport failure here degrades to an empty list so one unreadable
// collection does not take down the whole page.
func (s *FeedService) ListOrders(ctx context.Context) []domain.UnifiedOrder {
	raw, err := s.store.FetchOrders(ctx)
	if err != nil {
		s.logger.Warn("Order list degraded to empty", zap.Error(err))
		return []domain.UnifiedOrder{}
	}
	unified := make([]domain.UnifiedOrder, len(raw))
	for i, r := range raw {
		unified[i] = NormalizeOrder(r)
	}
	return unified
}

// ListQuotations is the quotation-only read path; degrades like ListOrders.
func (s *FeedService) ListQuotations(ctx context.Context) []domain.UnifiedOrder {
	raw, err := s.store.FetchQuotations(ctx)
	if err != nil {
		s.logger.Warn("Quotation list degraded to empty", zap.Error(err))
		return []domain.UnifiedOrder{}
	}
	unified := make([]domain.UnifiedOrder, len(raw))
	for i, r := range raw {
		unified[i] = NormalizeQuotation(r)
	}
	return unified
}

// FindByIDOrNumber locates one entity in the merged feed by backend id or
// display number. Also the post-action confirmation lookup for the
// lifecycle engine.
func (s *FeedService) FindByIDOrNumber(ctx context.Context, key string) (*domain.UnifiedOrder, error) {
	unified, err := s.ListUnified(ctx)
	if err != nil {
		return nil, err
	}
	for i := range unified {
		if unified[i].Matches(key) {
			return &unified[i], nil
		}
	}
	return nil, &errors.ErrLookupNotFound{Resource: "entity", Key: key}
}

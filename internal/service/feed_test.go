package service

import (
	"context"
	"testing"
	"time"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/pkg/errors"
)

// stubStore is an in-memory backend.Store for service tests.
type stubStore struct {
	orders     []domain.RawOrder
	quotations []domain.RawQuotation

	ordersErr     error
	quotationsErr error

	submittedOrderID     string
	submittedOrderStatus string
	submittedOrderNote   *string
	orderResult          *domain.RawOrder
	orderErr             error

	submittedQuotationID string
	submittedUpdate      backend.QuotationUpdate
	quotationResult      *domain.RawQuotation
	quotationErr         error
}

func (s *stubStore) FetchOrders(ctx context.Context) ([]domain.RawOrder, error) {
	return s.orders, s.ordersErr
}

func (s *stubStore) FetchQuotations(ctx context.Context) ([]domain.RawQuotation, error) {
	return s.quotations, s.quotationsErr
}

func (s *stubStore) SubmitOrderStatus(ctx context.Context, id, backendStatus string, note *string) (*domain.RawOrder, error) {
	s.submittedOrderID = id
	s.submittedOrderStatus = backendStatus
	s.submittedOrderNote = note
	return s.orderResult, s.orderErr
}

func (s *stubStore) SubmitQuotationUpdate(ctx context.Context, quotationID string, update backend.QuotationUpdate) (*domain.RawQuotation, error) {
	s.submittedQuotationID = quotationID
	s.submittedUpdate = update
	return s.quotationResult, s.quotationErr
}

func (s *stubStore) CreateOrder(ctx context.Context, payload backend.OrderCreate) (*domain.RawOrder, error) {
	return nil, nil
}

func (s *stubStore) DeleteOrder(ctx context.Context, id string) error {
	return nil
}

func at(hour int) time.Time {
	return time.Date(2025, 4, 10, hour, 0, 0, 0, time.UTC)
}

func TestListUnified_MergeOrdering(t *testing.T) {
	// Orders at t1, t3 and quotations at t2, t4 interleave into
	// [t4, t3, t2, t1].
	store := &stubStore{
		orders: []domain.RawOrder{
			{ID: "o1", Status: "PAID", UpdatedAt: at(1)},
			{ID: "o3", Status: "PAID", UpdatedAt: at(3)},
		},
		quotations: []domain.RawQuotation{
			{ID: "q2", Status: "PENDING", UpdatedAt: at(2)},
			{ID: "q4", Status: "PENDING", UpdatedAt: at(4)},
		},
	}
	feed := NewFeedService(store, nil)

	unified, err := feed.ListUnified(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"q4", "o3", "q2", "o1"}
	if len(unified) != len(want) {
		t.Fatalf("len = %d, want %d", len(unified), len(want))
	}
	for i, id := range want {
		if unified[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, unified[i].ID, id)
		}
	}
}

func TestListUnified_StableTies(t *testing.T) {
	// Equal timestamps keep fetch order: orders before quotations, and
	// within a collection the backend's order.
	store := &stubStore{
		orders: []domain.RawOrder{
			{ID: "o1", Status: "PAID", UpdatedAt: at(1)},
			{ID: "o2", Status: "PAID", UpdatedAt: at(1)},
		},
		quotations: []domain.RawQuotation{
			{ID: "q1", Status: "PENDING", UpdatedAt: at(1)},
		},
	}
	feed := NewFeedService(store, nil)

	unified, err := feed.ListUnified(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := []string{"o1", "o2", "q1"}
	for i, id := range want {
		if unified[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, unified[i].ID, id)
		}
	}
}

func TestListUnified_AllOrNothing(t *testing.T) {
	// A failed sub-fetch fails the merged feed; no silent empty
	// substitution.
	base := &errors.ErrTransport{Op: "FetchQuotations", Status: 500, Body: "boom"}
	store := &stubStore{
		orders:        []domain.RawOrder{{ID: "o1", Status: "PAID"}},
		quotationsErr: base,
	}
	feed := NewFeedService(store, nil)

	if _, err := feed.ListUnified(context.Background()); err != base {
		t.Fatalf("err = %v, want propagated transport error", err)
	}
}

func TestListOrders_DegradesToEmpty(t *testing.T) {
	store := &stubStore{
		ordersErr: &errors.ErrTransport{Op: "FetchOrders", Status: 503},
	}
	feed := NewFeedService(store, nil)

	if got := feed.ListOrders(context.Background()); len(got) != 0 {
		t.Errorf("degraded list = %v, want empty", got)
	}
}

func TestListQuotations_DegradesToEmpty(t *testing.T) {
	store := &stubStore{
		quotationsErr: &errors.ErrTransport{Op: "FetchQuotations", Status: 503},
	}
	feed := NewFeedService(store, nil)

	if got := feed.ListQuotations(context.Background()); len(got) != 0 {
		t.Errorf("degraded list = %v, want empty", got)
	}
}

func TestFindByIDOrNumber(t *testing.T) {
	store := &stubStore{
		orders: []domain.RawOrder{
			{ID: "65f1a2b3c4d5e6f7a8b9c0d1", OrderID: "ORD-2025-001", Status: "PAID", UpdatedAt: at(1)},
		},
		quotations: []domain.RawQuotation{
			{ID: "q1", QuotationID: "QUO-2025-001", Status: "PENDING", UpdatedAt: at(2)},
		},
	}
	feed := NewFeedService(store, nil)
	ctx := context.Background()

	byID, err := feed.FindByIDOrNumber(ctx, "q1")
	if err != nil || byID.DisplayNumber != "QUO-2025-001" {
		t.Fatalf("lookup by id: %v, %v", byID, err)
	}
	byNumber, err := feed.FindByIDOrNumber(ctx, "ORD-2025-001")
	if err != nil || byNumber.ID != "65f1a2b3c4d5e6f7a8b9c0d1" {
		t.Fatalf("lookup by display number: %v, %v", byNumber, err)
	}

	_, err = feed.FindByIDOrNumber(ctx, "nope")
	if _, ok := err.(*errors.ErrLookupNotFound); !ok {
		t.Fatalf("missing key err = %v, want ErrLookupNotFound", err)
	}
}

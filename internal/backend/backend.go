package backend

import (
	"context"

	"github.com/farmience/orderdesk/internal/domain"
)

// Store is the transport collaborator: the external order/quotation REST
// store. The core never talks to the network except through this interface.
//
// Submit calls may return a nil record with a nil error when the store
// acknowledges a write without echoing the updated record; callers then
// refetch and locate the entity themselves. Retries, backoff and caching are
// the store's concern, not this interface's.
type Store interface {
	FetchOrders(ctx context.Context) ([]domain.RawOrder, error)
	FetchQuotations(ctx context.Context) ([]domain.RawQuotation, error)
	SubmitOrderStatus(ctx context.Context, id, backendStatus string, note *string) (*domain.RawOrder, error)
	SubmitQuotationUpdate(ctx context.Context, quotationID string, update QuotationUpdate) (*domain.RawQuotation, error)
	CreateOrder(ctx context.Context, payload OrderCreate) (*domain.RawOrder, error)
	DeleteOrder(ctx context.Context, id string) error
}

// QuotationUpdate is a partial update against a quotation record. Nil
// fields are omitted from the request.
type QuotationUpdate struct {
	Status   *string                   `json:"status,omitempty"`
	Products []domain.RawQuotationLine `json:"products,omitempty"`
	Notes    *string                   `json:"notes,omitempty"`
}

// OrderCreate is the payload for creating a firm order.
type OrderCreate struct {
	CustomerID      string                `json:"customerId,omitempty"`
	Products        []domain.RawOrderLine `json:"products"`
	TotalAmount     float64               `json:"totalAmount"`
	Currency        string                `json:"currency,omitempty"`
	ShippingAddress map[string]string     `json:"shippingAddress,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

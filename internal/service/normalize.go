package service

import (
	"strings"

	"github.com/farmience/orderdesk/internal/domain"
)

// CustomerNamePending is shown while the customer lookup collaborator
// resolves the display name.
const CustomerNamePending = "Loading…"

// CustomerNameGuest is shown for walk-in entities with no customer record.
const CustomerNameGuest = "Guest"

// NormalizeOrder converts a raw backend order into the unified shape. It is
// a pure, total transform: missing fields default rather than fail, because
// the store's payload shape is not guaranteed field by field.
func NormalizeOrder(raw domain.RawOrder) domain.UnifiedOrder {
	items := make([]domain.LineItem, 0, len(raw.Products))
	var sum float64
	for _, p := range raw.Products {
		item := domain.LineItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.Price,
		}
		item.LineTotal = float64(p.Quantity) * item.EffectivePrice()
		sum += item.LineTotal
		items = append(items, item)
	}

	total := raw.TotalAmount
	if total == 0 {
		total = sum
	}

	u := domain.UnifiedOrder{
		ID:              raw.ID,
		DisplayNumber:   raw.OrderID,
		SourceKind:      domain.SourceOrder,
		CustomerName:    CustomerNameGuest,
		LineItems:       items,
		TotalAmount:     total,
		Status:          domain.ToUnifiedStatus(raw.Status, domain.SourceOrder),
		Notes:           raw.Notes,
		Currency:        raw.Currency,
		ShippingAddress: raw.ShippingAddress,
		ShippingCost:    raw.ShippingCost,
		Discount:        raw.Discount,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
	}
	if u.DisplayNumber == "" {
		u.DisplayNumber = deriveDisplayNumber("ORD-", raw.ID)
	}
	if u.Currency == "" {
		u.Currency = domain.DefaultCurrency
	}
	if raw.CustomerID != "" {
		id := raw.CustomerID
		u.CustomerID = &id
		u.CustomerName = CustomerNamePending
	}
	return u
}

// NormalizeQuotation converts a raw backend quotation into the unified
// shape. The quoted total is surfaced only when the admin's proposed
// pricing differs from the target-price sum; an equal quoted total carries
// no information and collapses to nil.
func NormalizeQuotation(raw domain.RawQuotation) domain.UnifiedOrder {
	items := make([]domain.LineItem, 0, len(raw.Products))
	var targetSum, quotedSum float64
	for _, p := range raw.Products {
		target := p.TargetPrice
		item := domain.LineItem{
			ProductID:   p.ProductID,
			Quantity:    p.Quantity,
			UnitPrice:   p.TargetPrice,
			TargetPrice: &target,
			QuotedPrice: p.QuotedPrice,
		}
		item.LineTotal = float64(p.Quantity) * item.EffectivePrice()
		targetSum += float64(p.Quantity) * p.TargetPrice
		quotedSum += item.LineTotal
		items = append(items, item)
	}

	total := targetSum
	if raw.TotalAmount != nil {
		total = *raw.TotalAmount
	}

	u := domain.UnifiedOrder{
		ID:              raw.ID,
		DisplayNumber:   raw.QuotationID,
		SourceKind:      domain.SourceQuotation,
		CustomerName:    CustomerNameGuest,
		LineItems:       items,
		TotalAmount:     total,
		Status:          domain.ToUnifiedStatus(raw.Status, domain.SourceQuotation),
		Notes:           raw.Notes,
		Currency:        domain.DefaultCurrency,
		ShippingAddress: raw.ShippingAddress,
		CreatedAt:       raw.CreatedAt,
		UpdatedAt:       raw.UpdatedAt,
	}
	if u.DisplayNumber == "" {
		u.DisplayNumber = deriveDisplayNumber("QUO-", raw.ID)
	}
	if quotedSum != targetSum {
		u.QuotedTotal = &quotedSum
	}
	if raw.CustomerID != "" {
		id := raw.CustomerID
		u.CustomerID = &id
		u.CustomerName = CustomerNamePending
	}
	return u
}

// deriveDisplayNumber builds a human-readable code from the record id when
// the backend did not assign one.
func deriveDisplayNumber(prefix, id string) string {
	tail := id
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return prefix + strings.ToUpper(tail)
}

package service

import (
	"testing"
	"time"

	"github.com/farmience/orderdesk/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeOrder(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)
	raw := domain.RawOrder{
		ID:          "65f1c2d3e4a5b6c7d8e9f0a1",
		OrderID:     "ORD-2025-001",
		CustomerID:  "cust-42",
		Products: []domain.RawOrderLine{
			{ProductID: "p1", Quantity: 2, Price: 120},
			{ProductID: "p2", Quantity: 1, Price: 60},
		},
		TotalAmount: 300,
		Currency:    "USD",
		Status:      "PROCESSING",
		CreatedAt:   created,
		UpdatedAt:   updated,
	}

	u := NormalizeOrder(raw)

	if u.SourceKind != domain.SourceOrder {
		t.Errorf("source kind = %s", u.SourceKind)
	}
	if u.DisplayNumber != "ORD-2025-001" {
		t.Errorf("display number = %s", u.DisplayNumber)
	}
	if u.Status != domain.StatusProcessing {
		t.Errorf("status = %s", u.Status)
	}
	if u.CustomerID == nil || *u.CustomerID != "cust-42" {
		t.Errorf("customer id = %v", u.CustomerID)
	}
	if u.CustomerName != CustomerNamePending {
		t.Errorf("customer name = %q, want placeholder", u.CustomerName)
	}
	if u.TotalAmount != 300 {
		t.Errorf("total = %v", u.TotalAmount)
	}
	// Line totals are recomputed, never trusted from the backend.
	if u.LineItems[0].LineTotal != 240 || u.LineItems[1].LineTotal != 60 {
		t.Errorf("line totals = %v, %v", u.LineItems[0].LineTotal, u.LineItems[1].LineTotal)
	}
	if u.QuotedTotal != nil {
		t.Errorf("orders never carry a quoted total, got %v", *u.QuotedTotal)
	}
}

func TestNormalizeOrder_Defaults(t *testing.T) {
	u := NormalizeOrder(domain.RawOrder{ID: "a1b2c3d4e5f6a7b8"})

	if u.CustomerName != CustomerNameGuest {
		t.Errorf("customer name = %q, want guest", u.CustomerName)
	}
	if u.CustomerID != nil {
		t.Errorf("customer id = %v, want nil", u.CustomerID)
	}
	if u.Currency != domain.DefaultCurrency {
		t.Errorf("currency = %q, want default", u.Currency)
	}
	if u.DisplayNumber != "ORD-E5F6A7B8" {
		t.Errorf("derived display number = %q", u.DisplayNumber)
	}
	if u.TotalAmount != 0 || len(u.LineItems) != 0 {
		t.Errorf("empty order should zero-default, got total=%v items=%d", u.TotalAmount, len(u.LineItems))
	}
}

func TestNormalizeQuotation_TargetPricingOnly(t *testing.T) {
	raw := domain.RawQuotation{
		ID:     "65f1c2d3e4a5b6c7d8e9f0a2",
		Status: "PENDING",
		Products: []domain.RawQuotationLine{
			{ProductID: "p1", Quantity: 3, TargetPrice: 100},
			{ProductID: "p2", Quantity: 1, TargetPrice: 50},
		},
	}

	u := NormalizeQuotation(raw)

	if u.SourceKind != domain.SourceQuotation {
		t.Errorf("source kind = %s", u.SourceKind)
	}
	if u.Status != domain.StatusQuoteRequested {
		t.Errorf("status = %s", u.Status)
	}
	if u.DisplayNumber != "QUO-D8E9F0A2" {
		t.Errorf("derived display number = %q", u.DisplayNumber)
	}
	if u.TotalAmount != 350 {
		t.Errorf("total = %v, want target sum 350", u.TotalAmount)
	}
	// No admin pricing yet: quoted total carries no information.
	if u.QuotedTotal != nil {
		t.Errorf("quoted total = %v, want nil", *u.QuotedTotal)
	}

	var sum float64
	for _, item := range u.LineItems {
		sum += item.LineTotal
	}
	if sum != u.TotalAmount {
		t.Errorf("sum invariant broken: sum=%v total=%v", sum, u.TotalAmount)
	}
}

func TestNormalizeQuotation_QuotedPricing(t *testing.T) {
	raw := domain.RawQuotation{
		ID:          "q1",
		QuotationID: "QUO-2025-009",
		Status:      "QUOTE_SENT",
		Products: []domain.RawQuotationLine{
			{ProductID: "p1", Quantity: 2, TargetPrice: 100, QuotedPrice: f64(110)},
			{ProductID: "p2", Quantity: 1, TargetPrice: 50},
		},
	}

	u := NormalizeQuotation(raw)

	if u.DisplayNumber != "QUO-2025-009" {
		t.Errorf("display number = %q", u.DisplayNumber)
	}
	// Target sum 250, quoted sum 2*110 + 1*50 = 270.
	if u.TotalAmount != 250 {
		t.Errorf("total = %v, want 250", u.TotalAmount)
	}
	if u.QuotedTotal == nil || *u.QuotedTotal != 270 {
		t.Errorf("quoted total = %v, want 270", u.QuotedTotal)
	}
	if u.LineItems[0].LineTotal != 220 {
		t.Errorf("quoted line total = %v, want 220", u.LineItems[0].LineTotal)
	}
	if u.LineItems[1].LineTotal != 50 {
		t.Errorf("target-fallback line total = %v, want 50", u.LineItems[1].LineTotal)
	}
}

func TestNormalizeQuotation_EqualQuotedTotalCollapses(t *testing.T) {
	// Admin quoted exactly the target prices: the quoted total must
	// collapse to nil, it exists only to signal a different number.
	raw := domain.RawQuotation{
		ID:     "q2",
		Status: "QUOTE_SENT",
		Products: []domain.RawQuotationLine{
			{ProductID: "p1", Quantity: 2, TargetPrice: 100, QuotedPrice: f64(100)},
		},
	}
	u := NormalizeQuotation(raw)
	if u.QuotedTotal != nil {
		t.Errorf("quoted total = %v, want nil when equal to target sum", *u.QuotedTotal)
	}
}

func TestNormalizeQuotation_BackendTotalWins(t *testing.T) {
	raw := domain.RawQuotation{
		ID:          "q3",
		Status:      "ACCEPTED",
		TotalAmount: f64(999),
		Products: []domain.RawQuotationLine{
			{ProductID: "p1", Quantity: 1, TargetPrice: 100},
		},
	}
	if u := NormalizeQuotation(raw); u.TotalAmount != 999 {
		t.Errorf("total = %v, want backend-provided 999", u.TotalAmount)
	}
}

func TestNormalizeQuotation_UnknownStatusDefaults(t *testing.T) {
	u := NormalizeQuotation(domain.RawQuotation{ID: "q4", Status: "WHAT_IS_THIS"})
	if u.Status != domain.StatusQuoteRequested {
		t.Errorf("status = %s, want quote_requested fallback", u.Status)
	}
}

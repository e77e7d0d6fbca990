package domain

import "strings"

// SourceKind tags which backend collection an entity came from. It is set
// once at normalization time and never changes.
type SourceKind string

const (
	SourceOrder     SourceKind = "order"
	SourceQuotation SourceKind = "quotation"
)

// UnifiedStatus is the single status vocabulary used everywhere above the
// backend. Quotation-side and order-side entities each use a disjoint subset.
type UnifiedStatus string

const (
	// Quotation subset
	StatusQuoteRequested UnifiedStatus = "quote_requested"
	StatusQuoteSent      UnifiedStatus = "quote_sent"
	StatusNegotiation    UnifiedStatus = "negotiation"
	StatusOrderBooked    UnifiedStatus = "order_booked"
	StatusRejected       UnifiedStatus = "rejected"

	// Order subset
	StatusPaymentPending UnifiedStatus = "payment_pending"
	StatusConfirmed      UnifiedStatus = "confirmed"
	StatusPaid           UnifiedStatus = "paid"
	StatusProcessing     UnifiedStatus = "processing"
	StatusShipped        UnifiedStatus = "shipped"
	StatusDelivered      UnifiedStatus = "delivered"
	StatusCancelled      UnifiedStatus = "cancelled"
)

// quotationStatusMap translates raw backend quotation statuses.
var quotationStatusMap = map[string]UnifiedStatus{
	"PENDING":     StatusQuoteRequested,
	"QUOTE_SENT":  StatusQuoteSent,
	"NEGOTIATING": StatusNegotiation,
	"ACCEPTED":    StatusOrderBooked,
	"REJECTED":    StatusRejected,
}

// rawQuotationStatusMap is the literal inverse, used when submitting
// quotation updates.
var rawQuotationStatusMap = map[UnifiedStatus]string{
	StatusQuoteRequested: "PENDING",
	StatusQuoteSent:      "QUOTE_SENT",
	StatusNegotiation:    "NEGOTIATING",
	StatusOrderBooked:    "ACCEPTED",
	StatusRejected:       "REJECTED",
}

// orderStatusMap translates raw backend order statuses.
var orderStatusMap = map[string]UnifiedStatus{
	"PENDING":    StatusPaymentPending,
	"CONFIRMED":  StatusConfirmed,
	"PAID":       StatusPaid,
	"PROCESSING": StatusProcessing,
	"SHIPPED":    StatusShipped,
	"DELIVERED":  StatusDelivered,
	"CANCELLED":  StatusCancelled,
}

// ToUnifiedStatus maps a raw backend status code to the unified vocabulary.
// It is total over all strings: unknown quotation codes fall back to
// quote_requested, unknown order codes pass through lowercased.
func ToUnifiedStatus(raw string, kind SourceKind) UnifiedStatus {
	if kind == SourceQuotation {
		if s, ok := quotationStatusMap[raw]; ok {
			return s
		}
		return StatusQuoteRequested
	}
	if s, ok := orderStatusMap[raw]; ok {
		return s
	}
	return UnifiedStatus(strings.ToLower(raw))
}

// ToRawQuotationStatus maps a unified status back to the backend quotation
// code. Statuses outside the quotation subset are upper-cased verbatim.
func ToRawQuotationStatus(status UnifiedStatus) string {
	if raw, ok := rawQuotationStatusMap[status]; ok {
		return raw
	}
	return strings.ToUpper(string(status))
}

// ToRawOrderStatus maps a unified status to the backend order code for
// submission. The backend tracks a coarser enum than the UI stages, so
// stage submissions remap: processing reports as PAID, completed as
// DELIVERED. Anything unrecognized is upper-cased verbatim.
func ToRawOrderStatus(status UnifiedStatus) string {
	switch status {
	case StatusProcessing:
		return "PAID"
	case StatusShipped:
		return "SHIPPED"
	case StatusDelivered, UnifiedStatus("completed"):
		return "DELIVERED"
	default:
		return strings.ToUpper(string(status))
	}
}

// IsTerminal reports whether no further lifecycle action applies.
func (s UnifiedStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusDelivered:
		return true
	default:
		return false
	}
}

// Turn identifies which party is expected to act next in a negotiation.
type Turn string

const (
	TurnAdmin    Turn = "admin"
	TurnCustomer Turn = "customer"
	TurnNone     Turn = "none"
)

// TurnFor computes whose turn it is from the source kind and status. Only
// quotations under negotiation have a turn; order_booked and rejected are
// always TurnNone.
func TurnFor(kind SourceKind, status UnifiedStatus) Turn {
	if kind != SourceQuotation {
		return TurnNone
	}
	switch status {
	case StatusQuoteRequested, StatusNegotiation:
		return TurnAdmin
	case StatusQuoteSent:
		return TurnCustomer
	default:
		return TurnNone
	}
}

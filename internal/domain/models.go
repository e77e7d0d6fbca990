package domain

import "time"

// DefaultCurrency is used when the backend omits a currency code.
const DefaultCurrency = "INR"

// RawOrder is an order record as the backend store returns it. Field names
// follow the store's JSON; the normalizer tolerates any of them missing.
type RawOrder struct {
	ID              string            `json:"_id"`
	OrderID         string            `json:"orderId"`
	CustomerID      string            `json:"customerId,omitempty"`
	Products        []RawOrderLine    `json:"products"`
	TotalAmount     float64           `json:"totalAmount"`
	Currency        string            `json:"currency"`
	Status          string            `json:"status"`
	ShippingAddress map[string]string `json:"shippingAddress,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	ShippingCost    float64           `json:"shippingCost,omitempty"`
	Discount        float64           `json:"discount,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type RawOrderLine struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// RawQuotation is a quotation record as the backend store returns it.
type RawQuotation struct {
	ID              string             `json:"_id"`
	QuotationID     string             `json:"quotationId,omitempty"`
	CustomerID      string             `json:"customerId,omitempty"`
	Products        []RawQuotationLine `json:"products"`
	TotalAmount     *float64           `json:"totalAmount,omitempty"`
	QuotedTotal     *float64           `json:"quotedTotal,omitempty"`
	Status          string             `json:"status"`
	ShippingAddress map[string]string  `json:"shippingAddress,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type RawQuotationLine struct {
	ProductID   string   `json:"productId"`
	Quantity    int      `json:"quantity"`
	TargetPrice float64  `json:"targetPrice"`
	QuotedPrice *float64 `json:"quotedPrice,omitempty"`
}

// LineItem is one line of a unified entity. LineTotal is always recomputed
// from the effective price, never trusted from the backend.
type LineItem struct {
	ProductID   string   `json:"product_id"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	TargetPrice *float64 `json:"target_price,omitempty"`
	QuotedPrice *float64 `json:"quoted_price,omitempty"`
	LineTotal   float64  `json:"line_total"`
}

// EffectivePrice resolves the price a line is charged at: quoted price when
// the admin has proposed one, else the customer's target, else the unit
// price.
func (li LineItem) EffectivePrice() float64 {
	if li.QuotedPrice != nil {
		return *li.QuotedPrice
	}
	if li.TargetPrice != nil {
		return *li.TargetPrice
	}
	return li.UnitPrice
}

// UnifiedOrder is the single representation of an order or quotation used
// above the backend. It is rebuilt from the latest backend payload on every
// fetch; there is no authoritative local copy.
type UnifiedOrder struct {
	ID            string        `json:"id"`
	DisplayNumber string        `json:"display_number"`
	SourceKind    SourceKind    `json:"source_kind"`
	CustomerID    *string       `json:"customer_id,omitempty"`
	CustomerName  string        `json:"customer_name"`
	LineItems     []LineItem    `json:"line_items"`
	TotalAmount   float64       `json:"total_amount"`
	// QuotedTotal is set only while the admin's proposed pricing differs
	// from the target-price sum.
	QuotedTotal     *float64          `json:"quoted_total,omitempty"`
	Status          UnifiedStatus     `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	Currency        string            `json:"currency"`
	ShippingAddress map[string]string `json:"shipping_address,omitempty"`
	ShippingCost    float64           `json:"shipping_cost,omitempty"`
	Discount        float64           `json:"discount,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Turn reports which party is expected to act next on this entity.
func (u *UnifiedOrder) Turn() Turn {
	return TurnFor(u.SourceKind, u.Status)
}

// Matches reports whether key identifies this entity by backend id or by
// display number.
func (u *UnifiedOrder) Matches(key string) bool {
	return key != "" && (u.ID == key || u.DisplayNumber == key)
}

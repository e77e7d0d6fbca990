package service

// QuotedLine is one line of an admin quote submission: the full product
// list is resubmitted with a quoted price per line.
type QuotedLine struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	TargetPrice float64 `json:"target_price" binding:"min=0"`
	QuotedPrice float64 `json:"quoted_price" binding:"min=0"`
}

// SendQuoteRequest is the payload for the send-quote action.
type SendQuoteRequest struct {
	Lines []QuotedLine `json:"lines" binding:"required,min=1"`
	Notes *string      `json:"notes,omitempty"`
}

// RejectRequest carries the optional rejection reason, stored as notes.
type RejectRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// OrderStatusRequest is the payload for an order-side stage transition.
type OrderStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Note   *string `json:"note,omitempty"`
}

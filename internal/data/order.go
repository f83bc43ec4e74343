// internal/data/order.go
package data

import "time"

// AnonymousUser is recorded in the createdBy/modifiedBy audit fields.
// The service runs without authentication, so every request is anonymous.
const AnonymousUser = "anonymous"

// Order represents a single order record. Identity is a UUID in the
// canonical 8-4-4-4-12 textual form, either supplied by the client or
// generated by the service.
//
// Creating an order is the only operation that moves stock; deleting or
// updating an order does not restock the book.
type Order struct {
	ID         string    `json:"ID"`         // Canonical UUID
	BookID     int64     `json:"book_ID"`    // Book this order is placed against
	Amount     int64     `json:"amount"`     // Units ordered; always >= 1
	CreatedAt  time.Time `json:"createdAt"`  // Set by the store on insert
	CreatedBy  string    `json:"createdBy"`  // Audit field, always "anonymous"
	ModifiedAt time.Time `json:"modifiedAt"` // Refreshed by the store on update
	ModifiedBy string    `json:"modifiedBy"` // Audit field, always "anonymous"

	// Book is populated only by read-time expansions ($expand=book).
	Book *Book `json:"book,omitempty"`
}

// CreateOrderInput holds the fields a client may supply when placing an order.
// ID is optional; when omitted the service generates a UUID. Amount is a
// pointer so a missing amount and an explicit zero can both be rejected
// with the same validation message.
type CreateOrderInput struct {
	ID     *string `json:"ID"`
	BookID *int64  `json:"book_ID"`
	Amount *int64  `json:"amount"`
}

// UpdateOrderInput holds the fields a client may supply when updating an order.
// Only non-nil fields are applied.
type UpdateOrderInput struct {
	BookID *int64 `json:"book_ID"`
	Amount *int64 `json:"amount"`
}

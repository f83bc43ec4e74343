// internal/data/models.go
package data

import (
	"database/sql"
	"errors"
	"fmt"
)

// Models is a top-level container that groups all entity model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the store without importing sql directly.
//
// The fields are interfaces so the same handlers can run against the
// PostgreSQL backend or the in-memory backend (selected at startup).
type Models struct {
	Authors AuthorModel // Operations on the authors table
	Books   BookModel   // Operations on the books table
	Orders  OrderModel  // Operations on the orders table, including the stock transaction
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Authors: PostgresAuthorModel{DB: db},
		Books:   PostgresBookModel{DB: db},
		Orders:  PostgresOrderModel{DB: db},
	}
}

// AuthorModel describes the operations available on Author records.
type AuthorModel interface {
	Insert(author *Author) error
	Get(id int64) (*Author, error)
	GetAll() ([]*Author, error)
	Update(author *Author) error
	Delete(id int64) error
}

// BookModel describes the operations available on Book records.
type BookModel interface {
	Insert(book *Book) error
	Get(id int64) (*Book, error)
	GetAll() ([]*Book, error)
	Update(book *Book) error
	Delete(id int64) error
}

// OrderModel describes the operations available on Order records.
//
// Insert is the inventory transaction: it checks for a duplicate order ID,
// conditionally decrements the book's stock, and persists the order as a
// single atomic unit. See the backend implementations for the isolation
// strategy.
type OrderModel interface {
	Insert(order *Order) error
	Get(id string) (*Order, error)
	GetAll() ([]*Order, error)
	Update(order *Order) error
	Delete(id string) error
}

// ErrRecordNotFound is returned when a lookup finds no matching record.
var ErrRecordNotFound = errors.New("record not found")

// ErrEntityExists is returned when a create collides with an existing
// record under the same identifier. A duplicate order create must fail
// with this error before any stock is touched.
var ErrEntityExists = errors.New("entity already exists")

// ErrSoldOut is returned when an order asks for more units than the book
// has in stock. A non-existent book behaves as stock zero, so it produces
// the same error rather than a not-found.
var ErrSoldOut = errors.New("sold out")

// ReferenceIntegrityError is returned when a mutation would orphan
// dependent records, e.g. deleting an author that still has books.
// Association names the violated relation as exposed to clients.
type ReferenceIntegrityError struct {
	Association string
}

func (e *ReferenceIntegrityError) Error() string {
	return fmt.Sprintf("reference integrity is violated for association %q", e.Association)
}

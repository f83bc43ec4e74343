// internal/data/book.go
package data

// Discount projection rule: books with more than discountThreshold units in
// stock are served with the marker appended to their title. The stored title
// is never altered; the projection is recomputed on every read so it can
// never go stale after stock changes.
const (
	discountThreshold = 111
	discountMarker    = " -- 11% discount!"
)

// Book represents a single book record.
// Identity is assigned by the client on create. AuthorID must reference an
// existing Author; the store enforces this on insert and update.
type Book struct {
	ID       int64  `json:"ID"`        // Unique identifier supplied by the client
	Title    string `json:"title"`     // Stored title, without the discount marker
	AuthorID int64  `json:"author_ID"` // Author this book belongs to
	Stock    int64  `json:"stock"`     // Sellable units; never negative

	// Author is populated only by read-time expansions ($expand=author).
	Author *Author `json:"author,omitempty"`
}

// DisplayTitle returns the title as served to clients: the stored title,
// with the discount marker appended when stock exceeds the threshold.
func (b *Book) DisplayTitle() string {
	if b.Stock > discountThreshold {
		return b.Title + discountMarker
	}
	return b.Title
}

// Display returns a copy of the book with the projected title applied,
// ready to be serialized on a read path.
func (b *Book) Display() *Book {
	projected := *b
	projected.Title = b.DisplayTitle()
	return &projected
}

// CreateBookInput holds the fields a client must supply when creating a book.
type CreateBookInput struct {
	ID       *int64  `json:"ID"`
	Title    *string `json:"title"`
	AuthorID *int64  `json:"author_ID"`
	Stock    *int64  `json:"stock"`
}

// UpdateBookInput holds the fields a client may supply when updating a book.
// Only non-nil fields are applied.
type UpdateBookInput struct {
	Title    *string `json:"title"`
	AuthorID *int64  `json:"author_ID"`
	Stock    *int64  `json:"stock"`
}

// internal/data/postgres.go
// PostgreSQL implementations of the entity models. SQL style follows the
// rest of the data layer: parameterized queries, RETURNING for generated
// columns, and sentinel errors mapped from driver error codes.
package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error codes we translate into domain errors.
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
)

// pqErrorCode extracts the PostgreSQL error code from err, or "" if err did
// not originate from the driver.
func pqErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// PostgresAuthorModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting author records.
type PostgresAuthorModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new author record. The ID is supplied by the client, so a
// collision with an existing author surfaces as ErrEntityExists.
func (m PostgresAuthorModel) Insert(author *Author) error {
	query := `
		INSERT INTO authors (author_id, name)
		VALUES ($1, $2)`

	_, err := m.DB.Exec(query, author.ID, author.Name)
	if pqErrorCode(err) == pqUniqueViolation {
		return ErrEntityExists
	}
	return err
}

// Get retrieves a single author by its primary key.
// Returns ErrRecordNotFound if no author with the given id exists.
func (m PostgresAuthorModel) Get(id int64) (*Author, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT author_id, name
		FROM authors
		WHERE author_id = $1`

	var author Author
	err := m.DB.QueryRow(query, id).Scan(&author.ID, &author.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAll retrieves every author, ordered by ID for stable output.
func (m PostgresAuthorModel) GetAll() ([]*Author, error) {
	query := `
		SELECT author_id, name
		FROM authors
		ORDER BY author_id ASC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		var author Author
		err := rows.Scan(&author.ID, &author.Name)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	return authors, rows.Err()
}

// Update saves the author's mutable fields back to the database.
// Returns ErrRecordNotFound if the author does not exist.
func (m PostgresAuthorModel) Update(author *Author) error {
	query := `
		UPDATE authors
		SET name = $1
		WHERE author_id = $2`

	result, err := m.DB.Exec(query, author.Name, author.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the author with the given id.
// The foreign key on books restricts the delete while any book still
// references the author; that driver error is mapped to a
// ReferenceIntegrityError naming the "author" association.
func (m PostgresAuthorModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM authors WHERE author_id = $1`

	result, err := m.DB.Exec(query, id)
	if pqErrorCode(err) == pqForeignKeyViolation {
		return &ReferenceIntegrityError{Association: "author"}
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// PostgresBookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type PostgresBookModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert adds a new book record. The ID is supplied by the client.
// A dangling author_ID trips the foreign key and is reported as a
// ReferenceIntegrityError for the "author" association.
func (m PostgresBookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (book_id, title, author_id, stock)
		VALUES ($1, $2, $3, $4)`

	_, err := m.DB.Exec(query, book.ID, book.Title, book.AuthorID, book.Stock)
	switch pqErrorCode(err) {
	case pqUniqueViolation:
		return ErrEntityExists
	case pqForeignKeyViolation:
		return &ReferenceIntegrityError{Association: "author"}
	}
	return err
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m PostgresBookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		SELECT book_id, title, author_id, stock
		FROM books
		WHERE book_id = $1`

	var book Book
	err := m.DB.QueryRow(query, id).Scan(&book.ID, &book.Title, &book.AuthorID, &book.Stock)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAll retrieves every book, ordered by ID for stable output.
func (m PostgresBookModel) GetAll() ([]*Book, error) {
	query := `
		SELECT book_id, title, author_id, stock
		FROM books
		ORDER BY book_id ASC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		err := rows.Scan(&book.ID, &book.Title, &book.AuthorID, &book.Stock)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// Update saves the book's mutable fields back to the database.
// Returns ErrRecordNotFound if the book does not exist, or a
// ReferenceIntegrityError if the new author_ID dangles.
func (m PostgresBookModel) Update(book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author_id = $2, stock = $3
		WHERE book_id = $4`

	result, err := m.DB.Exec(query, book.Title, book.AuthorID, book.Stock, book.ID)
	if pqErrorCode(err) == pqForeignKeyViolation {
		return &ReferenceIntegrityError{Association: "author"}
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the book with the given id.
// Mirroring the author guard, the foreign key on orders restricts the
// delete while any order still references the book.
func (m PostgresBookModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE book_id = $1`

	result, err := m.DB.Exec(query, id)
	if pqErrorCode(err) == pqForeignKeyViolation {
		return &ReferenceIntegrityError{Association: "book"}
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// PostgresOrderModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting order records.
type PostgresOrderModel struct {
	DB *sql.DB // Shared database connection pool
}

// Insert places an order as a single transaction:
//
//  1. Reject a duplicate order ID before anything else, so a failed
//     duplicate attempt never touches stock.
//  2. Conditionally decrement the book's stock. The UPDATE only matches
//     when stock covers the amount, so the check and the decrement are one
//     atomic statement; the row lock it takes serializes racing orders for
//     the same book until commit. Zero rows matched means the book is sold
//     out or does not exist, which is the same thing to an order.
//  3. Insert the order row. If two creates race on the same client-supplied
//     ID, the loser passed the duplicate check before the winner committed;
//     its INSERT then hits the primary key and the rollback undoes its
//     decrement.
//
// Either the decrement and the order both commit, or neither is visible.
func (m PostgresOrderModel) Insert(order *Order) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1)`, order.ID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntityExists
	}

	result, err := tx.Exec(`
		UPDATE books
		SET stock = stock - $1
		WHERE book_id = $2 AND stock >= $1`,
		order.Amount, order.BookID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSoldOut
	}

	query := `
		INSERT INTO orders (order_id, book_id, amount, created_at, created_by, modified_at, modified_by)
		VALUES ($1, $2, $3, now(), $4, now(), $4)
		RETURNING created_at, created_by, modified_at, modified_by`

	err = tx.QueryRow(query, order.ID, order.BookID, order.Amount, AnonymousUser).Scan(
		&order.CreatedAt,
		&order.CreatedBy,
		&order.ModifiedAt,
		&order.ModifiedBy,
	)
	if pqErrorCode(err) == pqUniqueViolation {
		return ErrEntityExists
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a single order by its UUID.
// Returns ErrRecordNotFound if no order with the given id exists.
func (m PostgresOrderModel) Get(id string) (*Order, error) {
	query := `
		SELECT order_id, book_id, amount, created_at, created_by, modified_at, modified_by
		FROM orders
		WHERE order_id = $1`

	var order Order
	err := m.DB.QueryRow(query, id).Scan(
		&order.ID,
		&order.BookID,
		&order.Amount,
		&order.CreatedAt,
		&order.CreatedBy,
		&order.ModifiedAt,
		&order.ModifiedBy,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &order, nil
}

// GetAll retrieves every order, oldest first.
func (m PostgresOrderModel) GetAll() ([]*Order, error) {
	query := `
		SELECT order_id, book_id, amount, created_at, created_by, modified_at, modified_by
		FROM orders
		ORDER BY created_at ASC, order_id ASC`

	rows, err := m.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID,
			&order.BookID,
			&order.Amount,
			&order.CreatedAt,
			&order.CreatedBy,
			&order.ModifiedAt,
			&order.ModifiedBy,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// Update saves the order's mutable fields and refreshes modified_at.
// Stock is not adjusted: orders are a sales record, and changing one does
// not return units to the shelf. Repointing the order at a book that does
// not exist trips the foreign key and is reported as a
// ReferenceIntegrityError for the "book" association.
func (m PostgresOrderModel) Update(order *Order) error {
	query := `
		UPDATE orders
		SET book_id = $1, amount = $2, modified_at = now()
		WHERE order_id = $3
		RETURNING modified_at`

	err := m.DB.QueryRow(query, order.BookID, order.Amount, order.ID).Scan(&order.ModifiedAt)
	if pqErrorCode(err) == pqForeignKeyViolation {
		return &ReferenceIntegrityError{Association: "book"}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	return err
}

// Delete removes the order with the given id. Stock is not restored.
// Returns ErrRecordNotFound if no matching record exists.
func (m PostgresOrderModel) Delete(id string) error {
	query := `DELETE FROM orders WHERE order_id = $1`

	result, err := m.DB.Exec(query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

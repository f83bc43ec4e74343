// internal/data/memory.go
// In-memory implementations of the entity models. This backend is selected
// with -db-dsn=memory and doubles as the deterministic store for tests.
// It enforces the same consistency contract as the PostgreSQL backend:
// atomic test-and-decrement per book, duplicate-ID rejection, and
// referential integrity on deletes.
package data

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore holds all entity records in maps guarded by a single RWMutex.
// Stock writers (order creation and book updates) additionally serialize on
// a per-book mutex so the read-check-decrement sequence for one book can
// never interleave.
type MemoryStore struct {
	mu      sync.RWMutex
	authors map[int64]Author
	books   map[int64]Book
	orders  map[string]Order
	seq     []string // Order IDs in insertion order, for stable listing

	lockMu    sync.Mutex
	bookLocks map[int64]*sync.Mutex

	nowFunc func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		authors:   make(map[int64]Author),
		books:     make(map[int64]Book),
		orders:    make(map[string]Order),
		bookLocks: make(map[int64]*sync.Mutex),
		nowFunc:   time.Now,
	}
}

// Models returns a Models container backed by this store.
func (s *MemoryStore) Models() Models {
	return Models{
		Authors: memoryAuthorModel{s},
		Books:   memoryBookModel{s},
		Orders:  memoryOrderModel{s},
	}
}

// bookLock returns the mutex serializing stock mutations for one book.
// Locks are created lazily and never removed; the set of books is small.
func (s *MemoryStore) bookLock(bookID int64) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.bookLocks[bookID]
	if !ok {
		lock = &sync.Mutex{}
		s.bookLocks[bookID] = lock
	}
	return lock
}

type memoryAuthorModel struct {
	s *MemoryStore
}

func (m memoryAuthorModel) Insert(author *Author) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.authors[author.ID]; exists {
		return ErrEntityExists
	}
	m.s.authors[author.ID] = *author
	return nil
}

func (m memoryAuthorModel) Get(id int64) (*Author, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	author, ok := m.s.authors[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &author, nil
}

func (m memoryAuthorModel) GetAll() ([]*Author, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	authors := make([]*Author, 0, len(m.s.authors))
	for _, author := range m.s.authors {
		author := author
		authors = append(authors, &author)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

func (m memoryAuthorModel) Update(author *Author) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.authors[author.ID]; !ok {
		return ErrRecordNotFound
	}
	m.s.authors[author.ID] = *author
	return nil
}

// Delete refuses to remove an author that still has books, leaving both the
// author and the books untouched.
func (m memoryAuthorModel) Delete(id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.authors[id]; !ok {
		return ErrRecordNotFound
	}
	for _, book := range m.s.books {
		if book.AuthorID == id {
			return &ReferenceIntegrityError{Association: "author"}
		}
	}
	delete(m.s.authors, id)
	return nil
}

type memoryBookModel struct {
	s *MemoryStore
}

func (m memoryBookModel) Insert(book *Book) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.books[book.ID]; exists {
		return ErrEntityExists
	}
	if _, ok := m.s.authors[book.AuthorID]; !ok {
		return &ReferenceIntegrityError{Association: "author"}
	}
	m.s.books[book.ID] = *book
	return nil
}

func (m memoryBookModel) Get(id int64) (*Book, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	book, ok := m.s.books[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &book, nil
}

func (m memoryBookModel) GetAll() ([]*Book, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	books := make([]*Book, 0, len(m.s.books))
	for _, book := range m.s.books {
		book := book
		books = append(books, &book)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

// Update replaces the book's stored fields. It takes the per-book lock
// because it writes stock, and must not race a concurrent order decrement.
func (m memoryBookModel) Update(book *Book) error {
	lock := m.s.bookLock(book.ID)
	lock.Lock()
	defer lock.Unlock()

	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.books[book.ID]; !ok {
		return ErrRecordNotFound
	}
	if _, ok := m.s.authors[book.AuthorID]; !ok {
		return &ReferenceIntegrityError{Association: "author"}
	}
	stored := *book
	stored.Author = nil
	m.s.books[book.ID] = stored
	return nil
}

// Delete refuses to remove a book that orders still reference, mirroring
// the author guard.
func (m memoryBookModel) Delete(id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.books[id]; !ok {
		return ErrRecordNotFound
	}
	for _, order := range m.s.orders {
		if order.BookID == id {
			return &ReferenceIntegrityError{Association: "book"}
		}
	}
	delete(m.s.books, id)
	return nil
}

type memoryOrderModel struct {
	s *MemoryStore
}

// Insert places an order atomically. The per-book lock makes the duplicate
// check, the stock check, and the decrement one critical section for the
// targeted book, so racing orders serialize and stock can never go
// negative. A book that does not exist behaves as stock zero.
func (m memoryOrderModel) Insert(order *Order) error {
	lock := m.s.bookLock(order.BookID)
	lock.Lock()
	defer lock.Unlock()

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.orders[order.ID]; exists {
		return ErrEntityExists
	}

	book, ok := m.s.books[order.BookID]
	if !ok || book.Stock < order.Amount {
		return ErrSoldOut
	}

	book.Stock -= order.Amount
	m.s.books[order.BookID] = book

	now := m.s.nowFunc().UTC()
	order.CreatedAt = now
	order.ModifiedAt = now
	order.CreatedBy = AnonymousUser
	order.ModifiedBy = AnonymousUser

	stored := *order
	stored.Book = nil
	m.s.orders[order.ID] = stored
	m.s.seq = append(m.s.seq, order.ID)
	return nil
}

func (m memoryOrderModel) Get(id string) (*Order, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	order, ok := m.s.orders[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &order, nil
}

func (m memoryOrderModel) GetAll() ([]*Order, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	orders := make([]*Order, 0, len(m.s.seq))
	for _, id := range m.s.seq {
		order := m.s.orders[id]
		orders = append(orders, &order)
	}
	return orders, nil
}

// Update replaces the order's mutable fields and refreshes modifiedAt.
// Stock is not adjusted; orders are a sales record. Repointing the order
// at a book that does not exist is a referential-integrity violation.
func (m memoryOrderModel) Update(order *Order) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored, ok := m.s.orders[order.ID]
	if !ok {
		return ErrRecordNotFound
	}
	if _, ok := m.s.books[order.BookID]; !ok {
		return &ReferenceIntegrityError{Association: "book"}
	}
	stored.BookID = order.BookID
	stored.Amount = order.Amount
	stored.ModifiedAt = m.s.nowFunc().UTC()
	m.s.orders[order.ID] = stored
	*order = stored
	return nil
}

// Delete removes the order. Stock is not restored.
func (m memoryOrderModel) Delete(id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.orders[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.s.orders, id)
	for i, seqID := range m.s.seq {
		if seqID == id {
			m.s.seq = append(m.s.seq[:i], m.s.seq[i+1:]...)
			break
		}
	}
	return nil
}

// SeedSample loads the development data set: the authors and books the
// service ships with when running on the in-memory backend.
func SeedSample(models Models) error {
	authors := []Author{
		{ID: 101, Name: "Emily Brontë"},
		{ID: 107, Name: "Charlotte Brontë"},
		{ID: 150, Name: "Edgar Allen Poe"},
		{ID: 170, Name: "Richard Carpenter"},
	}
	for i := range authors {
		if err := models.Authors.Insert(&authors[i]); err != nil {
			return err
		}
	}

	books := []Book{
		{ID: 201, Title: "Wuthering Heights", AuthorID: 101, Stock: 12},
		{ID: 207, Title: "Jane Eyre", AuthorID: 107, Stock: 11},
		{ID: 251, Title: "The Raven", AuthorID: 150, Stock: 333},
		{ID: 252, Title: "Eleonora", AuthorID: 150, Stock: 555},
		{ID: 271, Title: "Catweazle", AuthorID: 170, Stock: 22},
	}
	for i := range books {
		if err := models.Books.Insert(&books[i]); err != nil {
			return err
		}
	}
	return nil
}

// cmd/api/api_test.go
// End-to-end handler tests. Every request runs through the full middleware
// chain against the in-memory backend seeded with the sample catalog, so
// the entity-key path syntax and error envelopes are exercised exactly as
// a client would see them.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/aoideee/bookshop-api/internal/data"
	"github.com/aoideee/bookshop-api/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var uuidRX = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// errorEnvelope mirrors the uniform error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestApp builds an application wired to a seeded in-memory store.
// The rate limiter is disabled so tests can hammer the handler freely.
func newTestApp(t *testing.T) *applicationDependencies {
	t.Helper()

	store := data.NewMemoryStore()
	app := &applicationDependencies{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:  store.Models(),
		metrics: metrics.NewRegistry(),
	}
	app.config.environment = "test"
	app.config.limiter.enabled = false

	if err := data.SeedSample(app.models); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return app
}

// seedBook255 adds the mutable test book used by the order scenarios.
func seedBook255(t *testing.T, app *applicationDependencies) {
	t.Helper()
	book := &data.Book{ID: 255, Title: "Head First Java", AuthorID: 101, Stock: 150}
	if err := app.models.Books.Insert(book); err != nil {
		t.Fatalf("seed book 255: %v", err)
	}
}

func doRequest(t *testing.T, app *applicationDependencies, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, wantMessage string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	var env errorEnvelope
	decodeBody(t, rr, &env)
	if got, want := env.Error.Code, strconv.Itoa(status); got != want {
		t.Errorf("error code = %q, want %q", got, want)
	}
	if wantMessage != "" && env.Error.Message != wantMessage {
		t.Errorf("message = %q, want %q", env.Error.Message, wantMessage)
	}
}

func bookStock(t *testing.T, app *applicationDependencies, id int64) int64 {
	t.Helper()
	book, err := app.models.Books.Get(id)
	if err != nil {
		t.Fatalf("get book %d: %v", id, err)
	}
	return book.Stock
}

func TestListAuthors(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Authors", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Value []data.Author `json:"value"`
	}
	decodeBody(t, rr, &body)
	if len(body.Value) != 4 {
		t.Fatalf("authors = %d, want 4", len(body.Value))
	}
	if body.Value[0].ID != 101 || body.Value[0].Name != "Emily Brontë" {
		t.Errorf("first author = %+v", body.Value[0])
	}
}

func TestShowAuthor(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Authors(101)", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var author data.Author
	decodeBody(t, rr, &author)
	if author.ID != 101 {
		t.Errorf("ID = %d, want 101", author.ID)
	}
}

func TestShowAuthorNotFound(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Authors(9999)", "")
	assertError(t, rr, http.StatusNotFound, "Not Found")
}

func TestCreateAuthor(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Authors", `{"ID": 999, "name": "Mary Shelley"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	var author data.Author
	decodeBody(t, rr, &author)
	if author.ID != 999 || author.Name != "Mary Shelley" {
		t.Errorf("created = %+v", author)
	}

	// A repeat create under the same ID collides.
	rr = doRequest(t, app, http.MethodPost, "/catalog/Authors", `{"ID": 999, "name": "Someone Else"}`)
	assertError(t, rr, http.StatusBadRequest, "Entity already exists")
}

func TestUpdateAuthorName(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPut, "/catalog/Authors(101)", `{"name": "J.K.Rowling"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var author data.Author
	decodeBody(t, rr, &author)
	if author.ID != 101 || author.Name != "J.K.Rowling" {
		t.Errorf("updated = %+v", author)
	}
}

func TestUpdateAuthorNotFound(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPut, "/catalog/Authors(9999)", `{"name": "Nobody"}`)
	assertError(t, rr, http.StatusNotFound, "Not Found")
}

func TestDeleteAuthorWithBooksRefused(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodDelete, "/catalog/Authors(101)", "")
	assertError(t, rr, http.StatusBadRequest, `Reference integrity is violated for association "author"`)

	// The author and the dependent book are untouched.
	if rr := doRequest(t, app, http.MethodGet, "/catalog/Authors(101)", ""); rr.Code != http.StatusOK {
		t.Errorf("author gone after refused delete (status %d)", rr.Code)
	}
	if rr := doRequest(t, app, http.MethodGet, "/catalog/Books(201)", ""); rr.Code != http.StatusOK {
		t.Errorf("book gone after refused delete (status %d)", rr.Code)
	}
}

func TestDeleteAuthorWithoutBooks(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/catalog/Authors", `{"ID": 888, "name": "No Books Yet"}`)

	rr := doRequest(t, app, http.MethodDelete, "/catalog/Authors(888)", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}

	rr = doRequest(t, app, http.MethodGet, "/catalog/Authors(888)", "")
	assertError(t, rr, http.StatusNotFound, "Not Found")
}

func TestListBooksDiscountProjection(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Books", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Value []data.Book `json:"value"`
	}
	decodeBody(t, rr, &body)
	if len(body.Value) != 5 {
		t.Fatalf("books = %d, want 5", len(body.Value))
	}
	for _, book := range body.Value {
		hasMarker := strings.HasSuffix(book.Title, " -- 11% discount!")
		if book.Stock > 111 && !hasMarker {
			t.Errorf("book %d (stock %d) missing discount marker: %q", book.ID, book.Stock, book.Title)
		}
		if book.Stock <= 111 && hasMarker {
			t.Errorf("book %d (stock %d) wrongly discounted: %q", book.ID, book.Stock, book.Title)
		}
	}
}

func TestShowBookDiscounted(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Books(252)", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var book data.Book
	decodeBody(t, rr, &book)
	if book.Title != "Eleonora -- 11% discount!" {
		t.Errorf("title = %q", book.Title)
	}
	if book.Stock != 555 {
		t.Errorf("stock = %d, want 555", book.Stock)
	}
}

func TestShowBookNotFound(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Books(9999)", "")
	assertError(t, rr, http.StatusNotFound, "Not Found")
}

func TestCreateBook(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Books", `{"ID": 255, "title": "Head First Java", "author_ID": 101, "stock": 150}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	var book data.Book
	decodeBody(t, rr, &book)
	if book.ID != 255 || book.AuthorID != 101 || book.Stock != 150 {
		t.Errorf("created = %+v", book)
	}
}

func TestCreateBookDanglingAuthor(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Books", `{"ID": 256, "title": "Orphan", "author_ID": 424242, "stock": 1}`)
	assertError(t, rr, http.StatusBadRequest, `Reference integrity is violated for association "author"`)
}

func TestUpdateBookStock(t *testing.T) {
	app := newTestApp(t)
	seedBook255(t, app)

	rr := doRequest(t, app, http.MethodPut, "/catalog/Books(255)", `{"title": "Head First Java", "author_ID": 101, "stock": 150}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if got := bookStock(t, app, 255); got != 150 {
		t.Errorf("stock = %d, want 150", got)
	}
}

func TestDeleteBookWithOrdersRefused(t *testing.T) {
	app := newTestApp(t)
	seedBook255(t, app)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 255, "amount": 1}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("order status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, app, http.MethodDelete, "/catalog/Books(255)", "")
	assertError(t, rr, http.StatusBadRequest, `Reference integrity is violated for association "book"`)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	app := newTestApp(t)
	seedBook255(t, app)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 255, "amount": 10}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	var order data.Order
	decodeBody(t, rr, &order)
	if !uuidRX.MatchString(order.ID) {
		t.Errorf("generated ID %q is not a canonical UUID", order.ID)
	}
	if order.BookID != 255 || order.Amount != 10 {
		t.Errorf("order = %+v", order)
	}
	if order.CreatedBy != "anonymous" || order.ModifiedBy != "anonymous" {
		t.Errorf("audit fields = %q/%q", order.CreatedBy, order.ModifiedBy)
	}

	if got := bookStock(t, app, 255); got != 140 {
		t.Errorf("stock = %d, want 140", got)
	}

	if got := testutil.ToFloat64(app.metrics.OrdersAccepted); got != 1 {
		t.Errorf("orders accepted metric = %v, want 1", got)
	}
}

func TestCreateOrderSoldOut(t *testing.T) {
	app := newTestApp(t)
	seedBook255(t, app)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 255, "amount": 200}`)
	assertError(t, rr, http.StatusConflict, "Sold out, sorry")

	if got := bookStock(t, app, 255); got != 150 {
		t.Errorf("stock = %d, want 150 (unchanged)", got)
	}
}

func TestCreateOrderClientSuppliedID(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 251, "amount": 1}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}

	var order data.Order
	decodeBody(t, rr, &order)
	if order.ID != id {
		t.Errorf("ID = %q, want %q", order.ID, id)
	}
}

func TestCreateOrderDuplicateID(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	body := `{"ID": "` + id + `", "book_ID": 251, "amount": 1}`

	if rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", body); rr.Code != http.StatusCreated {
		t.Fatalf("first create status = %d (body %s)", rr.Code, rr.Body.String())
	}

	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", body)
	assertError(t, rr, http.StatusBadRequest, "Entity already exists")

	// Only the first create moved stock.
	if got := bookStock(t, app, 251); got != 332 {
		t.Errorf("stock = %d, want 332", got)
	}
}

func TestCreateOrderMalformedUUID(t *testing.T) {
	app := newTestApp(t)

	const truncated = "c13d3eec-942e-470d-97b3-e03322" // 30 chars
	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+truncated+`", "book_ID": 251, "amount": 1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var env errorEnvelope
	decodeBody(t, rr, &env)
	if env.Error.Code != "400" {
		t.Errorf("code = %q, want 400", env.Error.Code)
	}
	message := env.Error.Message
	if !strings.Contains(message, "Deserialization Error") {
		t.Errorf("message missing error class: %q", message)
	}
	if !strings.Contains(message, truncated) {
		t.Errorf("message does not name the offending value: %q", message)
	}
	if !strings.Contains(message, "8HEXDIG-4HEXDIG-4HEXDIG-4HEXDIG-12HEXDIG") {
		t.Errorf("message does not quote the grammar: %q", message)
	}
}

func TestCreateOrderAmountValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{"book_ID": 252}`},
		{"zero amount", `{"book_ID": 252, "amount": 0}`},
		{"negative amount", `{"book_ID": 252, "amount": -3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", tt.body)
			assertError(t, rr, http.StatusBadRequest, "Order at least 1 book")
		})
	}

	// None of the rejected orders may have moved stock.
	if got := bookStock(t, app, 252); got != 555 {
		t.Errorf("stock = %d, want 555", got)
	}
}

func TestCreateOrderUnknownBook(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 999999, "amount": 1}`)
	assertError(t, rr, http.StatusConflict, "Sold out, sorry")
}

func TestListOrders(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 251, "amount": 1}`)
	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 252, "amount": 2}`)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Value []data.Order `json:"value"`
	}
	decodeBody(t, rr, &body)
	if len(body.Value) != 2 {
		t.Fatalf("orders = %d, want 2", len(body.Value))
	}
	for _, order := range body.Value {
		if !uuidRX.MatchString(order.ID) {
			t.Errorf("order ID %q is not a canonical UUID", order.ID)
		}
		if order.CreatedAt.IsZero() || order.ModifiedAt.IsZero() {
			t.Errorf("order %s missing timestamps", order.ID)
		}
		if order.CreatedBy == "" || order.ModifiedBy == "" {
			t.Errorf("order %s missing audit fields", order.ID)
		}
	}
}

func TestShowOrder(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 201, "amount": 1}`)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders("+id+")", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var order data.Order
	decodeBody(t, rr, &order)
	if order.ID != id {
		t.Errorf("ID = %q, want %q", order.ID, id)
	}
}

func TestShowOrderMalformedKey(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders(c13d3eec-942e-470d-97b3-e03322136636-09)", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var env errorEnvelope
	decodeBody(t, rr, &env)
	if !strings.Contains(env.Error.Message, "Expected uri token 'CLOSE' could not be found") {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestOrderExpandBook(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 252, "amount": 1}`)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders?$expand=book", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Value []data.Order `json:"value"`
	}
	decodeBody(t, rr, &body)
	if len(body.Value) != 1 {
		t.Fatalf("orders = %d, want 1", len(body.Value))
	}

	order := body.Value[0]
	if order.Book == nil {
		t.Fatal("book not expanded")
	}
	if order.Book.ID != order.BookID {
		t.Errorf("book.ID = %d, want %d", order.Book.ID, order.BookID)
	}
	// The expanded book carries the display title.
	if order.Book.Title != "Eleonora -- 11% discount!" {
		t.Errorf("expanded title = %q", order.Book.Title)
	}
	if order.Book.Author != nil {
		t.Error("author expanded without being requested")
	}
}

func TestOrderExpandBookAuthor(t *testing.T) {
	app := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"book_ID": 252, "amount": 1}`)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders?$expand=book($expand=author)", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body struct {
		Value []data.Order `json:"value"`
	}
	decodeBody(t, rr, &body)
	if len(body.Value) != 1 {
		t.Fatalf("orders = %d, want 1", len(body.Value))
	}

	order := body.Value[0]
	if order.Book == nil || order.Book.Author == nil {
		t.Fatalf("expansion incomplete: %+v", order)
	}
	if order.Book.ID != order.BookID {
		t.Errorf("book.ID = %d, want %d", order.Book.ID, order.BookID)
	}
	if order.Book.Author.ID != order.Book.AuthorID {
		t.Errorf("author.ID = %d, want %d", order.Book.Author.ID, order.Book.AuthorID)
	}
	if order.Book.Author.Name != "Edgar Allen Poe" {
		t.Errorf("author name = %q", order.Book.Author.Name)
	}
}

func TestUpdateOrder(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	rr := doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 251, "amount": 1}`)
	var created data.Order
	decodeBody(t, rr, &created)

	rr = doRequest(t, app, http.MethodPut, "/catalog/Orders("+id+")", `{"book_ID": 201, "amount": 5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var updated data.Order
	decodeBody(t, rr, &updated)
	if updated.BookID != 201 || updated.Amount != 5 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.ModifiedAt.Before(created.ModifiedAt) {
		t.Errorf("modifiedAt went backwards: %v -> %v", created.ModifiedAt, updated.ModifiedAt)
	}

	// Order updates never restock: book 251 still reflects the original sale.
	if got := bookStock(t, app, 251); got != 332 {
		t.Errorf("stock = %d, want 332", got)
	}
}

func TestUpdateOrderWithoutBody(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 251, "amount": 1}`)

	rr := doRequest(t, app, http.MethodPut, "/catalog/Orders("+id+")", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestUpdateOrderInvalidFieldType(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 251, "amount": 1}`)

	rr := doRequest(t, app, http.MethodPut, "/catalog/Orders("+id+")", `{"book_ID": 201, "amount": "ramdom string"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var env errorEnvelope
	decodeBody(t, rr, &env)
	if env.Error.Code != "400" {
		t.Errorf("code = %q, want 400", env.Error.Code)
	}
	if !strings.Contains(env.Error.Message, "Invalid value") {
		t.Errorf("message = %q, want it to contain %q", env.Error.Message, "Invalid value")
	}
}

func TestDeleteOrder(t *testing.T) {
	app := newTestApp(t)

	const id = "c13d3eec-942e-470d-97b3-e03322136636"
	doRequest(t, app, http.MethodPost, "/catalog/Orders", `{"ID": "`+id+`", "book_ID": 251, "amount": 1}`)

	rr := doRequest(t, app, http.MethodDelete, "/catalog/Orders("+id+")", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}

	// Deleting does not restock.
	if got := bookStock(t, app, 251); got != 332 {
		t.Errorf("stock = %d, want 332", got)
	}

	rr = doRequest(t, app, http.MethodGet, "/catalog/Orders("+id+")", "")
	assertError(t, rr, http.StatusNotFound, "Not Found")
}

func TestDeleteOrderMalformedKey(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodDelete, "/catalog/Orders(c13d3eec-942e-470d-97b3-e03322136636-09)", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var env errorEnvelope
	decodeBody(t, rr, &env)
	if !strings.Contains(env.Error.Message, "Expected uri token 'CLOSE' could not be found") {
		t.Errorf("message = %q", env.Error.Message)
	}
}

func TestUnbalancedKeyLiteral(t *testing.T) {
	app := newTestApp(t)

	rr := doRequest(t, app, http.MethodGet, "/catalog/Orders(c13d3eec", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var env errorEnvelope
	decodeBody(t, rr, &env)
	if !strings.Contains(env.Error.Message, "Expected uri token 'CLOSE' could not be found") {
		t.Errorf("message = %q", env.Error.Message)
	}
}

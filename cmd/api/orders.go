// cmd/api/orders.go
// HTTP request handlers for the Orders resource. Order creation is the
// operation that moves stock: validation runs first, then the store's
// atomic test-and-decrement transaction places the order.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aoideee/bookshop-api/internal/data"
	"github.com/aoideee/bookshop-api/internal/metrics"
	"github.com/aoideee/bookshop-api/internal/validator"

	"github.com/google/uuid"
)

// expandMode selects which related entities are nested into order reads.
type expandMode int

const (
	expandNone       expandMode = iota
	expandBook                  // ?$expand=book
	expandBookAuthor            // ?$expand=book($expand=author)
)

// parseExpand reads the $expand query option. Only the book and nested
// author expansions are supported.
func parseExpand(qs url.Values) (expandMode, error) {
	switch value := qs.Get("$expand"); value {
	case "":
		return expandNone, nil
	case "book":
		return expandBook, nil
	case "book($expand=author)":
		return expandBookAuthor, nil
	default:
		return expandNone, fmt.Errorf("Invalid value %q for query option $expand", value)
	}
}

// expandOrder attaches the order's book (with display title) and, for the
// nested mode, the book's author. The projections are read-only copies;
// stored records are never modified.
func (app *applicationDependencies) expandOrder(order *data.Order, mode expandMode) error {
	if mode == expandNone {
		return nil
	}

	book, err := app.models.Books.Get(order.BookID)
	if err != nil {
		// The book guard should make this unreachable, but an order with a
		// dangling book_ID is served unexpanded rather than failing the read.
		if errors.Is(err, data.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	display := book.Display()
	if mode == expandBookAuthor {
		author, err := app.models.Authors.Get(book.AuthorID)
		if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
			return err
		}
		display.Author = author
	}

	order.Book = display
	return nil
}

// listOrdersHandler handles GET /catalog/Orders, with optional
// $expand=book and $expand=book($expand=author) projections.
func (app *applicationDependencies) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := parseExpand(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	orders, err := app.models.Orders.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	for _, order := range orders {
		if err := app.expandOrder(order, mode); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": orders}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showOrderHandler handles GET /catalog/Orders(:id).
// A key that is not a canonical UUID is a malformed path literal (400);
// a well-formed key with no record is a 404.
func (app *applicationDependencies) showOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, id)
		return
	}

	mode, err := parseExpand(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.models.Orders.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.expandOrder(order, mode); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, order, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createOrderHandler handles POST /catalog/Orders.
//
// Validation order matters: a malformed client-supplied ID fails with the
// deserialization error before anything else, a missing or sub-one amount
// fails with "Order at least 1 book", and only then does the store run the
// atomic duplicate-check/decrement/insert transaction. A failed request
// never touches stock.
func (app *applicationDependencies) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateOrderInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.metrics.OrdersRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
		app.badRequestResponse(w, r, err)
		return
	}

	if input.ID != nil && !validator.IsUUID(*input.ID) {
		app.metrics.OrdersRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
		app.guidDeserializationResponse(w, r, *input.ID)
		return
	}

	if input.Amount == nil || *input.Amount < 1 {
		app.metrics.OrdersRejected.WithLabelValues(metrics.ReasonInvalid).Inc()
		app.orderAmountResponse(w, r)
		return
	}

	order := &data.Order{
		Amount: *input.Amount,
	}
	if input.ID != nil {
		order.ID = *input.ID
	} else {
		order.ID = uuid.NewString()
	}
	if input.BookID != nil {
		order.BookID = *input.BookID
	}

	err = app.models.Orders.Insert(order)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEntityExists):
			app.metrics.OrdersRejected.WithLabelValues(metrics.ReasonDuplicate).Inc()
			app.entityExistsResponse(w, r)
		case errors.Is(err, data.ErrSoldOut):
			app.metrics.OrdersRejected.WithLabelValues(metrics.ReasonSoldOut).Inc()
			app.soldOutResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.OrdersAccepted.Inc()

	err = app.writeJSON(w, http.StatusCreated, order, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateOrderHandler handles PUT /catalog/Orders(:id).
// Only the fields present in the body are applied; modifiedAt is refreshed
// by the store. Stock is not adjusted by order updates.
func (app *applicationDependencies) updateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, id)
		return
	}

	var input data.UpdateOrderInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.models.Orders.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if input.BookID != nil {
		order.BookID = *input.BookID
	}
	if input.Amount != nil {
		order.Amount = *input.Amount
	}

	if order.Amount < 1 {
		app.orderAmountResponse(w, r)
		return
	}

	err = app.models.Orders.Update(order)
	if err != nil {
		var refErr *data.ReferenceIntegrityError
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.As(err, &refErr):
			app.referenceIntegrityResponse(w, r, refErr.Association)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, order, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteOrderHandler handles DELETE /catalog/Orders(:id).
// Deleting an order does not restock the book; orders are a sales record.
func (app *applicationDependencies) deleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, id)
		return
	}

	err = app.models.Orders.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// cmd/api/books.go
// HTTP request handlers for the Books resource. Every read path serves the
// display title, i.e. the stored title with the discount marker appended
// when stock exceeds the threshold; the stored title is never mutated.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookshop-api/internal/data"
	"github.com/aoideee/bookshop-api/internal/validator"
)

// listBooksHandler handles GET /catalog/Books.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	projected := make([]*data.Book, 0, len(books))
	for _, book := range books {
		projected = append(projected, book.Display())
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": projected}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /catalog/Books(:id).
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book.Display(), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /catalog/Books.
// The client supplies the identity; author_ID must reference an existing
// author or the create is refused with the reference-integrity message.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateBookInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.ID != nil && *input.ID >= 1, "ID", "must be a positive integer")
	v.Check(input.Title != nil && *input.Title != "", "title", "must be provided")
	v.Check(input.AuthorID != nil && *input.AuthorID >= 1, "author_ID", "must be a positive integer")
	v.Check(input.Stock == nil || *input.Stock >= 0, "stock", "must not be negative")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book := &data.Book{
		ID:       *input.ID,
		Title:    *input.Title,
		AuthorID: *input.AuthorID,
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}

	err = app.models.Books.Insert(book)
	if err != nil {
		var refErr *data.ReferenceIntegrityError
		switch {
		case errors.Is(err, data.ErrEntityExists):
			app.entityExistsResponse(w, r)
		case errors.As(err, &refErr):
			app.referenceIntegrityResponse(w, r, refErr.Association)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /catalog/Books(:id).
// Only the fields present in the body are applied. Setting a new title
// replaces the stored title as-is; the discount marker is never persisted.
// Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.AuthorID != nil {
		book.AuthorID = *input.AuthorID
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}

	v := validator.New()
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(book.AuthorID >= 1, "author_ID", "must be a positive integer")
	v.Check(book.Stock >= 0, "stock", "must not be negative")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Update(book)
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

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /catalog/Books(:id).
// Mirroring the author guard, the delete is refused while any order still
// references the book.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	err = app.models.Books.Delete(id)
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

	w.WriteHeader(http.StatusNoContent)
}

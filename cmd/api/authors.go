// cmd/api/authors.go
// HTTP request handlers for the Authors resource. Each handler is a method
// on *applicationDependencies so it has access to the logger, the metrics
// registry, and the entity models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookshop-api/internal/data"
	"github.com/aoideee/bookshop-api/internal/validator"
)

// listAuthorsHandler handles GET /catalog/Authors.
// Responds with every author wrapped in the {"value": [...]} envelope.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := app.models.Authors.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"value": authors}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showAuthorHandler handles GET /catalog/Authors(:id).
// Responds 404 if no author with that ID exists.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	author, err := app.models.Authors.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, author, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createAuthorHandler handles POST /catalog/Authors.
// The client supplies the identity; a collision responds 400.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input data.CreateAuthorInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.ID != nil && *input.ID >= 1, "ID", "must be a positive integer")
	v.Check(input.Name != nil && *input.Name != "", "name", "must be provided")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author := &data.Author{
		ID:   *input.ID,
		Name: *input.Name,
	}

	err = app.models.Authors.Insert(author)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEntityExists):
			app.entityExistsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, author, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateAuthorHandler handles PUT /catalog/Authors(:id).
// Only the fields present in the body are applied.
// Responds 404 if the author does not exist.
func (app *applicationDependencies) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	var input data.UpdateAuthorInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	author, err := app.models.Authors.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if input.Name != nil {
		author.Name = *input.Name
	}

	v := validator.New()
	v.Check(author.Name != "", "name", "must be provided")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Authors.Update(author)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, author, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteAuthorHandler handles DELETE /catalog/Authors(:id).
// The delete is refused while any book still references the author, and
// the author record is left untouched in that case.
func (app *applicationDependencies) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, raw, err := app.readIDParam(r)
	if err != nil {
		app.uriTokenErrorResponse(w, r, raw)
		return
	}

	err = app.models.Authors.Delete(id)
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

// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Every failure is serialized in the uniform envelope
// {"error": {"code": "<status>", "message": "<text>"}} with code carrying
// the HTTP status as a string.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/aoideee/bookshop-api/internal/validator"
)

// errorPayload is the body of the "error" envelope key.
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// errorResponse sends the JSON error envelope with the given status code and message.
// It is the low-level building block used by all the specific error helpers below.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := envelope{"error": errorPayload{Code: strconv.Itoa(status), Message: message}}
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
// We never expose internal error details to the client for security reasons.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// notFoundResponse sends a 404 Not Found error.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "Not Found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 response flattening the field-level
// errors collected by a Validator into a single message, sorted by field
// name so the output is deterministic.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+errors[field])
	}
	app.errorResponse(w, r, http.StatusBadRequest, strings.Join(parts, "; "))
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// soldOutResponse sends the 409 conflict returned when an order asks for
// more units than the book has in stock (or the book does not exist).
func (app *applicationDependencies) soldOutResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusConflict, "Sold out, sorry")
}

// entityExistsResponse sends the 400 returned when a create collides with
// an existing record under the same identifier.
func (app *applicationDependencies) entityExistsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "Entity already exists")
}

// orderAmountResponse sends the 400 returned when an order's amount is
// missing or below one.
func (app *applicationDependencies) orderAmountResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "Order at least 1 book")
}

// referenceIntegrityResponse sends the 400 returned when a mutation would
// orphan dependent records, naming the violated association.
func (app *applicationDependencies) referenceIntegrityResponse(w http.ResponseWriter, r *http.Request, association string) {
	message := fmt.Sprintf("Reference integrity is violated for association %q", association)
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

// guidDeserializationResponse sends the 400 returned when an order payload
// carries an ID that is not in the canonical UUID form, quoting the
// offending value and the expected grammar.
func (app *applicationDependencies) guidDeserializationResponse(w http.ResponseWriter, r *http.Request, value string) {
	message := fmt.Sprintf(
		"Deserialization Error: Invalid value %s for property %q. A string value in the format %s must be specified as value for type Edm.Guid.",
		value, "ID", validator.UUIDGrammar,
	)
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

// uriTokenErrorResponse sends the 400 returned when a resource-path key
// literal cannot be parsed, e.g. /Orders(<malformed-uuid>).
func (app *applicationDependencies) uriTokenErrorResponse(w http.ResponseWriter, r *http.Request, key string) {
	message := fmt.Sprintf("Expected uri token 'CLOSE' could not be found in '(%s)'", key)
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

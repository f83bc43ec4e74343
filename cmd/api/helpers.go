// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/aoideee/bookshop-api/internal/validator"

	"github.com/julienschmidt/httprouter"
)

// envelope is the top-level JSON wrapper type used for structured responses:
// {"value": [...]} for collections and {"error": {...}} for failures.
// Single entities are serialized bare, without a wrapper.
type envelope map[string]any

// errInvalidKeyLiteral marks a resource-path key that could not be parsed,
// e.g. /Orders(<not-a-uuid>). It maps to the URI-token error response.
var errInvalidKeyLiteral = errors.New("invalid key literal")

// readIDParam extracts and validates the ":id" URL parameter for the
// integer-keyed resources (Authors, Books). The raw key is returned
// alongside the error so the caller can quote it back to the client.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	raw := params.ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, raw, errInvalidKeyLiteral
	}
	return id, raw, nil
}

// readUUIDParam extracts the ":id" URL parameter for the Orders resource and
// checks it against the canonical UUID form. The raw key is always returned
// so the caller can quote it in the URI-token error.
func (app *applicationDependencies) readUUIDParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	raw := params.ByName("id")
	if !validator.IsUUID(raw) {
		return raw, errInvalidKeyLiteral
	}
	return raw, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data).
//
// A wrong-typed field (say, a string where a number belongs) is reported as
// an "Invalid value" error naming the property, matching the external
// contract for malformed payloads.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields() // Reject fields not present in dst.

	err := dec.Decode(dst)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return fmt.Errorf("Invalid value (%s) for property %q", typeErr.Value, typeErr.Field)
			}
			return fmt.Errorf("Invalid value (%s) in request body", typeErr.Value)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		}
		return err
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

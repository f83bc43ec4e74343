// Package validator provides a custom Validator type for accumulating
// field-level validation errors, plus the UUID check used for order IDs.
package validator

import "github.com/google/uuid"

// UUIDGrammar is the canonical textual form an order ID must take,
// as quoted back to clients in deserialization errors.
const UUIDGrammar = "8HEXDIG-4HEXDIG-4HEXDIG-4HEXDIG-12HEXDIG"

// canonicalUUIDLength is the length of the 8-4-4-4-12 form including dashes.
const canonicalUUIDLength = 36

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(name) > 0, "name", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// IsUUID reports whether value is a UUID in the canonical 8-4-4-4-12
// textual form. uuid.Parse also accepts braced, URN, and undashed forms,
// so the length is pinned first to admit only the canonical one.
func IsUUID(value string) bool {
	if len(value) != canonicalUUIDLength {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

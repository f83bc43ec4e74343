// Package data provides the entity models and storage backends for the
// bookshop catalog service.
package data

// Author represents a single author record.
// Identity is assigned by the client on create.
type Author struct {
	ID   int64  `json:"ID"`   // Unique identifier supplied by the client
	Name string `json:"name"` // Display name of the author
}

// CreateAuthorInput holds the fields a client must supply when creating an author.
type CreateAuthorInput struct {
	ID   *int64  `json:"ID"`
	Name *string `json:"name"`
}

// UpdateAuthorInput holds the fields a client may supply when updating an author.
// Fields are pointers so we can distinguish "not provided" (nil) from
// "intentionally set". Only non-nil fields are applied.
type UpdateAuthorInput struct {
	Name *string `json:"name"`
}

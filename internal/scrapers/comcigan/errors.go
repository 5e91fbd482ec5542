package comcigan

import "errors"

var (
	// ErrTransport wraps any failure of the Transport, including non-2xx responses.
	ErrTransport = errors.New("comcigan: transport failed")

	// ErrSchemaNotFound means the bootstrap script no longer matches the pattern table.
	ErrSchemaNotFound = errors.New("comcigan: schema not found")

	ErrMissingField     = errors.New("comcigan: missing field")
	ErrMalformedPayload = errors.New("comcigan: malformed payload")
	ErrCodeDecode       = errors.New("comcigan: could not decode period code")

	// ErrEmptyResult is returned by FindSchool when a search has no matches.
	ErrEmptyResult = errors.New("comcigan: no search results")
)

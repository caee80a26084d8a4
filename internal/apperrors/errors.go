package apperrors

import "errors"

// Error kinds returned by services. Handlers translate these into HTTP
// status codes; the services themselves never see a transport.
var (
	// ErrNotFound means a referenced person does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a person with the same name is already registered.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput means a request field is missing or violates the
	// duty timeline ordering rules.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal means a storage failure the caller cannot correct.
	ErrInternal = errors.New("internal error")
)

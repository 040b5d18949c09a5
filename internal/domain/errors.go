package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — a missing record, a record with no attached
// image, or an image file absent from storage.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, rating outside 1-5).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnsupportedMedia is returned by the image service when an uploaded
// file's declared content type does not indicate an image.
// Handlers should map this to HTTP 400.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ErrStorage is returned by the image service when the attachment byte store
// fails to persist or read an object. Handlers should map this to HTTP 500
// with a storage-specific error code.
var ErrStorage = errors.New("storage error")

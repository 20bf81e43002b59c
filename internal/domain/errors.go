package domain

import "errors"

// ErrNotFound is returned by store and service functions when the
// requested resource (a record, a day, an activity) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. an unsupported currency code, an unknown budget field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAuthFailure is returned when no identity can be established;
// neither a supplied token nor the anonymous fallback. The application
// continues in local-only mode; edits stay in memory and are not persisted.
var ErrAuthFailure = errors.New("auth failure")

// ErrCorruptRecord is returned when a stored payload cannot be
// deserialized. The gateway substitutes the default document instead of
// propagating this to the UI.
var ErrCorruptRecord = errors.New("corrupt record")

// ErrExportUnavailable is returned when the export capability is absent
// or an export is already running. No partial file is ever produced.
var ErrExportUnavailable = errors.New("export unavailable")

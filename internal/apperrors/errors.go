package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// Sending a week for review while an open request exists for the same
// company/week/creator surfaces as this error.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotAuthenticated indicates that no current user could be resolved.
// No mutation is attempted when this is returned.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrForbidden indicates that the current user's role or capability does not
// permit the requested action.
var ErrForbidden = errors.New("forbidden")

// ErrEmptyScope indicates that a bulk action found zero eligible targets.
// Callers treat it as a no-op success with an informative message, not a failure.
var ErrEmptyScope = errors.New("no eligible targets in scope")

// ErrStoreRead indicates that a store query failed. Partial data must not be
// assumed valid; retrying is the caller's choice.
var ErrStoreRead = errors.New("store read failed")

// ErrBatchWrite indicates that an atomic batch write was rejected.
// No partial state change has occurred.
var ErrBatchWrite = errors.New("batch write failed")

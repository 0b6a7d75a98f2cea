package code

// HTTP status codes.
const (
	// StatusOK - 200.
	StatusOK = 200
	// StatusCreated - 201.
	StatusCreated = 201
	// StatusBadRequest - 400.
	StatusBadRequest = 400
	// StatusUnauthorized - 401.
	StatusUnauthorized = 401
	// StatusForbidden - 403.
	StatusForbidden = 403
	// StatusNotFound - 404.
	StatusNotFound = 404
	// StatusConflict - 409.
	StatusConflict = 409
	// StatusTooManyRequests - 429.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503.
	StatusServiceUnavailable = 503
)

// General error codes (100xxx).
const (
	// ErrSuccess - 200.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500.
	ErrUnknown
	// ErrBind - 400: request body could not be bound.
	ErrBind
	// ErrValidation - 400: request fields failed validation.
	ErrValidation
	// ErrTokenInvalid - 401.
	ErrTokenInvalid
	// ErrTooManyRequests - 429.
	ErrTooManyRequests
	// ErrForbidden - 403.
	ErrForbidden
	// ErrInvalidDate - 400: unparseable date or time.
	ErrInvalidDate
	// ErrInvalidReference - 400: resident missing or porter inactive.
	ErrInvalidReference
)

// User error codes (101xxx).
const (
	// ErrUserNotFound - 404.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: login already taken.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401.
	ErrUserPasswordIncorrect
	// ErrUserSelfModification - 400: an account cannot disable or delete itself.
	ErrUserSelfModification
	// ErrBootstrapClosed - 409: first-run setup already happened.
	ErrBootstrapClosed
	// ErrPorterNotEligible - 400: not an active porter.
	ErrPorterNotEligible
)

// Resident error codes (103xxx).
const (
	// ErrResidentNotFound - 404.
	ErrResidentNotFound int = iota + 103000
	// ErrResidentInUse - 409: packages still reference the resident.
	ErrResidentInUse
)

// Package error codes (104xxx).
const (
	// ErrPackageNotFound - 404.
	ErrPackageNotFound int = iota + 104000
	// ErrPackageAlreadyDelivered - 409.
	ErrPackageAlreadyDelivered
	// ErrEmptySelection - 400: batch without ids.
	ErrEmptySelection
)

// Database error codes (105xxx).
const (
	// ErrDatabase - 503: database unreachable or failing.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404.
	ErrRecordNotFound
)

// Pairing error codes (106xxx).
const (
	// ErrPairingUnavailable - 503: no LAN address could be determined.
	ErrPairingUnavailable int = iota + 106000
)

package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedCurrency indicates a currency code unknown to the registry.
// Fatal to the request that carried it.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrConversionUnavailable indicates no rate exists for a required currency
// pair. Fatal to the request; a conversion is never defaulted to a 1.0 rate.
var ErrConversionUnavailable = errors.New("conversion rate unavailable")

// ErrRateFetchFailed indicates the rate provider was unreachable, timed out
// or returned a non-2xx response. Recovered locally: the last good snapshot
// is retained and staleness is surfaced instead.
var ErrRateFetchFailed = errors.New("rate fetch failed")

// ErrPersistenceFailed indicates a best-effort historical write failed.
// Logged and absorbed; never rolls back the in-memory refresh.
var ErrPersistenceFailed = errors.New("persistence failed")

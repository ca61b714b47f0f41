package catalog

import "errors"

// Failure kinds of the fetch pipeline. Each step reports exactly one of them;
// callers branch with errors.Is.
var (
	// ErrInvalidName: the requested name failed syntactic validation.
	ErrInvalidName = errors.New("invalid pokemon name")
	// ErrUpstreamUnavailable: the upstream lookup timed out, failed or returned non-2xx.
	ErrUpstreamUnavailable = errors.New("pokemon not available upstream")
	// ErrMalformedUpstreamData: the upstream record is absent or misses a required key.
	ErrMalformedUpstreamData = errors.New("malformed upstream data")
	// ErrValidationFailed: the transformed record broke a semantic rule.
	// The wrapped *domain.ValidationError lists every violated rule.
	ErrValidationFailed = errors.New("pokemon data failed validation")
	// ErrWriteFailed: the transactional write was rolled back.
	ErrWriteFailed = errors.New("pokemon write failed")
)

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCorpus signals a vectorizer fit over zero usable text documents.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrNotPrepared signals a recommendation call before any successful prepare.
	ErrNotPrepared = errors.New("catalog not prepared")
	// ErrInvalidConstraint signals a malformed facet constraint.
	ErrInvalidConstraint = errors.New("invalid constraint")
	// ErrUnknownCatalog signals a catalog kind with no registered engine.
	ErrUnknownCatalog = errors.New("unknown catalog")
	// ErrCatalogMismatch signals a snapshot handed to an engine of another catalog kind.
	ErrCatalogMismatch = errors.New("catalog kind mismatch")
	// ErrInvalidSkinMetrics signals skin metrics outside the supported enums.
	ErrInvalidSkinMetrics = errors.New("invalid skin metrics")
	// ErrInvalidRequest signals a request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDeliveryFailed signals that a recommendation bundle could not be delivered.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrSourceNotConfigured signals a reload for a catalog without a snapshot source.
	ErrSourceNotConfigured = errors.New("catalog source not configured")
)

// EmptyCorpusError wraps ErrEmptyCorpus with the catalog that failed to fit.
type EmptyCorpusError struct {
	Catalog string
}

func (e *EmptyCorpusError) Error() string {
	if e.Catalog == "" {
		return ErrEmptyCorpus.Error() + ": no non-empty documents"
	}
	return fmt.Sprintf("%s: catalog %q has no non-empty documents", ErrEmptyCorpus.Error(), e.Catalog)
}

func (e *EmptyCorpusError) Unwrap() error { return ErrEmptyCorpus }

// NotPreparedError wraps ErrNotPrepared with the catalog that was queried.
type NotPreparedError struct {
	Catalog string
}

func (e *NotPreparedError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotPrepared.Error(), e.Catalog)
}

func (e *NotPreparedError) Unwrap() error { return ErrNotPrepared }

// InvalidConstraintError wraps ErrInvalidConstraint with the offending field and raw value.
// Callers drop the constraint and keep filtering.
type InvalidConstraintError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidConstraintError) Error() string {
	return fmt.Sprintf("%s: %s=%q: %s", ErrInvalidConstraint.Error(), e.Field, e.Value, e.Reason)
}

func (e *InvalidConstraintError) Unwrap() error { return ErrInvalidConstraint }

// NewInvalidConstraint creates an invalid constraint error.
func NewInvalidConstraint(field, value, reason string) *InvalidConstraintError {
	return &InvalidConstraintError{Field: field, Value: value, Reason: reason}
}

// Package store is the external parameter-store boundary used for indirect
// cross-account and cross-run linkage. Producers publish string values at
// predictable paths; consumers look the same paths up at their own build or
// deploy time. The path convention is owned by the naming package; both
// sides must construct it from identical inputs.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotPublished marks a path that the current manifest is expected to
// publish but that has no value yet: the producer run has not completed.
var ErrNotPublished = errors.New("parameter not yet published")

// ErrUnknownPath marks a path no component of the current manifest would ever
// publish. Distinguishing this from ErrNotPublished is deliberate: a consumer
// waiting on an unknown path will wait forever.
var ErrUnknownPath = errors.New("parameter path unknown to manifest")

// NotFoundError carries the missing path together with whichever of the two
// sentinel causes applies. errors.Is works against both sentinels.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

func (e *NotFoundError) Unwrap() error { return e.Cause }

// Client is the minimal publish/lookup surface of the parameter store.
type Client interface {
	// Publish writes value at path, overwriting any previous value.
	Publish(ctx context.Context, path, value string) error
	// Lookup reads the value at path. Missing paths return a *NotFoundError
	// wrapping ErrNotPublished; backends cannot tell the two not-found
	// causes apart on their own, so the caller upgrades the cause to
	// ErrUnknownPath when the path is not derivable from its manifest.
	Lookup(ctx context.Context, path string) (string, error)
	Close() error
}

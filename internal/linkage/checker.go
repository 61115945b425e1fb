package linkage

import (
	"context"
	"errors"

	"github.com/plattolabs/stackforge/internal/store"
)

// Status of one consumed parameter path at preflight time.
type Status int

const (
	// StatusPublished means the path holds a value.
	StatusPublished Status = iota
	// StatusPending means a producer of the current manifest will publish
	// the path but has not deployed yet.
	StatusPending
	// StatusUnknown means no producer of the current manifest publishes the
	// path; a lookup against it would never succeed.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusPublished:
		return "published"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Checker resolves consumed paths against the external store, upgrading the
// backend's undifferentiated not-found into pending-vs-unknown using the
// manifest's publish catalog.
type Checker struct {
	cli      store.Client
	expected map[string]struct{}
}

func NewChecker(cli store.Client, catalog []string) *Checker {
	expected := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		expected[p] = struct{}{}
	}
	return &Checker{cli: cli, expected: expected}
}

// Check reports the status of one path without returning its value.
func (c *Checker) Check(ctx context.Context, path string) (Status, error) {
	_, err := c.cli.Lookup(ctx, path)
	switch {
	case err == nil:
		return StatusPublished, nil
	case errors.Is(err, store.ErrNotPublished):
		if _, ok := c.expected[path]; ok {
			return StatusPending, nil
		}
		return StatusUnknown, nil
	default:
		return StatusUnknown, err
	}
}

// Lookup reads a path, distinguishing the two not-found causes: paths outside
// the manifest's catalog come back wrapping store.ErrUnknownPath.
func (c *Checker) Lookup(ctx context.Context, path string) (string, error) {
	v, err := c.cli.Lookup(ctx, path)
	if err != nil && errors.Is(err, store.ErrNotPublished) {
		if _, ok := c.expected[path]; !ok {
			return "", &store.NotFoundError{Path: path, Cause: store.ErrUnknownPath}
		}
	}
	return v, err
}

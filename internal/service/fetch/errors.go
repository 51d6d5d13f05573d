package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecoverable matches every *FetchError: retries were exhausted and
	// no last-good copy exists for the resource.
	ErrUnrecoverable = errors.New("fetch: unrecoverable")

	// ErrEnvelope marks a response whose body is not a usable {status:"ok"} envelope.
	ErrEnvelope = errors.New("fetch: bad envelope")
)

// FetchError reports a resource that could not be served fresh or stale.
type FetchError struct {
	Key      string
	Attempts int
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %d attempt(s) failed: %v", e.Key, e.Attempts, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

func (e *FetchError) Is(target error) bool { return target == ErrUnrecoverable }

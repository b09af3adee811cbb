package service

import (
	"context"
	"errors"
	"time"

	"toolshare-backend/internal/domain"
)

const (
	readAttempts     = 3
	readBackoffStart = 100 * time.Millisecond
)

// isPermanent reports whether an error is a business-rule failure that a
// retry cannot change.
func isPermanent(err error) bool {
	for _, sentinel := range []error{
		domain.ErrNotFound, domain.ErrDateConflict, domain.ErrInvalidDuration,
		domain.ErrInvalidTransition, domain.ErrNotAuthenticated, domain.ErrForbidden,
		domain.ErrInactiveItem, domain.ErrOwnItem, domain.ErrInvalidRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// retryRead runs a read-only operation up to readAttempts times with a
// doubling backoff, starting at readBackoffStart. Write paths never come
// through here: retrying a write after an ambiguous failure could book the
// same dates twice.
func retryRead[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var result T
	var err error
	backoff := readBackoffStart
	for attempt := 0; attempt < readAttempts; attempt++ {
		result, err = fn()
		if err == nil || isPermanent(err) {
			return result, err
		}
		if attempt == readAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return result, err
}

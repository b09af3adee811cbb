package domain

import "errors"

// Business-rule failures are expected, recoverable conditions and are
// surfaced to the caller with a specific message. Anything else bubbles up
// as a transport/storage error and is shown generically.
var (
	// ErrNotFound covers missing items, rentals, and blocks.
	ErrNotFound = errors.New("not found")

	// ErrDateConflict means the requested range overlaps an existing
	// availability block. Never retried automatically against the same
	// range; the renter has to pick different dates.
	ErrDateConflict = errors.New("requested dates conflict with an existing booking")

	// ErrInvalidDuration means the requested range is shorter than the
	// item's minimum or longer than its maximum rental length.
	ErrInvalidDuration = errors.New("rental duration outside the item's allowed range")

	// ErrInvalidTransition means the rental is not in a state from which
	// the requested transition is allowed. Enforced server-side even when
	// the client UI would normally prevent it.
	ErrInvalidTransition = errors.New("invalid rental state transition")

	// ErrNotAuthenticated means the request carries no valid identity.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden means the authenticated actor is not allowed to perform
	// the operation (wrong party, not an admin, not the owner).
	ErrForbidden = errors.New("not allowed")

	// ErrInactiveItem means the item has been deactivated by its lender.
	ErrInactiveItem = errors.New("item is no longer listed")

	// ErrOwnItem means a lender tried to rent their own tool.
	ErrOwnItem = errors.New("cannot rent your own item")
)

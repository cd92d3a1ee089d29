package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller mistakes; nothing was read or written.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownMenuItem is returned when an order references an item no tier knows.
	ErrUnknownMenuItem = fmt.Errorf("%w: unknown menu item", ErrValidation)

	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoBackend means every enabled backend failed (or none is enabled).
	ErrNoBackend = errors.New("no backend could serve the request")

	// errEmpty marks a backend that answered with nothing usable.
	errEmpty = errors.New("empty result")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

package storefront

import "errors"

var (
	// -- Checkout --
	ErrCheckoutClosed = errors.New("checkout is not open")

	// -- Events --
	ErrUnknownEvent     = errors.New("unknown event")
	ErrDuplicateHandler = errors.New("event handler already registered")
)

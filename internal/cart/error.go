package cart

import "errors"

var (
	// -- Resource State --
	ErrCartEmpty = errors.New("cart is empty")
)

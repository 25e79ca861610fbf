package errors

import "errors"

var (
	// ErrProductNotFound indicates that the selected product is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrCheckoutSessionFailed indicates that the payment provider rejected the session
	ErrCheckoutSessionFailed = errors.New("failed to create checkout session")
)

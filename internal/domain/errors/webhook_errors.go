package errors

import "errors"

var (
	// ErrInvalidPayload indicates that the webhook body is not a parseable event
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrInvalidSignature indicates that the webhook signature header is missing or does not match
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

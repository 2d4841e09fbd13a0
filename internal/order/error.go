package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// -- Configuration --
	ErrGatewayNotConfigured = errors.New("order gateway not configured")

	// -- Submission State --
	ErrSubmissionInProgress = errors.New("order submission already in progress")

	// -- Lookup --
	ErrInvalidLookupEmail = errors.New("invalid email for order lookup")
)

// FieldError is a single failed form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors lists every failed field of a form, in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return "invalid order form: " + strings.Join(parts, "; ")
}

// GatewayError wraps a failure reported by the persistence gateway.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("order gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

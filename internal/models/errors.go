package models

import "errors"

// Absence errors. These route to 404-class responses and are not
// logged as failures: "no such cart" is an answer, not a fault.
var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrLineItemNotFound = errors.New("line item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// Conflict errors (409-class).
var (
	ErrCartExists  = errors.New("user already has an active cart")
	ErrEmailExists = errors.New("email already registered")
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Write failures distinct from absence: the row was expected to be
// written and the store reported zero affected rows.
var (
	ErrCartWriteFailed     = errors.New("cart write failed")
	ErrLineItemWriteFailed = errors.New("line item write failed")
	ErrOrderWriteFailed    = errors.New("order write failed")
)

// ValidationError marks malformed caller input. Operations reject it
// before any store interaction.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsNotFound reports whether err is one of the absence errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCartNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrLineItemNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCartExists) || errors.Is(err, ErrEmailExists)
}

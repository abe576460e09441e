package models

import "errors"

// Failure taxonomy shared across services. Handlers classify wrapped errors
// with errors.Is to pick a response code.
var (
	// ErrNotFound indicates a referenced boat, entry, invoice or note does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates submitted fields failed shape or
	// required-field checks.
	ErrValidation = errors.New("invalid input")

	// ErrBusinessRule indicates the operation violated a domain rule, such
	// as invoicing an empty selection or an illegal status transition.
	ErrBusinessRule = errors.New("business rule violation")
)

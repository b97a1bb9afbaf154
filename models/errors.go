package models

import "errors"

var (
	// ErrCustomerNotFound is returned when the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrLoanNotFound is returned when the referenced loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidInput is returned for malformed or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")
)

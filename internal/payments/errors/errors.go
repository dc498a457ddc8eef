package errors

import "errors"

var (
	ErrNotFound = errors.New("wallet not found")

	ErrInsufficientFunds = errors.New("insufficient funds")
)

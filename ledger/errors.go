package ledger

import "errors"

var (
	// Validation rejections. The presentation layer is expected to keep
	// these from ever firing; state is untouched when they do.
	ErrEmptyName     = errors.New("empty account name")
	ErrEmptyTitle    = errors.New("empty transaction title")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrLastAccount signals the invariant that the account collection is
	// never emptied. Callers are expected to surface it to the user.
	ErrLastAccount = errors.New("cannot delete the last account")

	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

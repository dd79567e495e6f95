package domain

import "errors"

// Sentinel errors for the error kinds the services surface. Callers match
// with errors.Is; services wrap these with entity context via fmt.Errorf.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrAmountExceeded   = errors.New("price exceeds the total amount of products")
	ErrIllegalState     = errors.New("illegal state")
	ErrInvalidLineItems = errors.New("invalid line items")
	ErrProfaneName      = errors.New("name contains profanity")
)

package domain

import "errors"

var (
	ErrPoolNotFound      = errors.New("pool not found")
	ErrPoolEmpty         = errors.New("pool has no content")
	ErrTitleNotFound     = errors.New("title not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

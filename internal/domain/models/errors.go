package models

import "errors"

var (
	// ErrInvalidInput covers missing required fields and malformed or
	// non-positive prices.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when an operation references an unknown article id.
	ErrNotFound = errors.New("article not found")
	// ErrAlreadySold is returned when mutating the price of an article that left inventory.
	ErrAlreadySold = errors.New("article already sold")
	// ErrStoreIO wraps any failure of the underlying record store.
	ErrStoreIO = errors.New("record store failure")
)

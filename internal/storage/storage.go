package storage

import "context"

// Storage defines the behavior of exchange storage
type Storage interface {
	// Store is the action of storing
	Store(context.Context, Exchange) error
}

// NopStorage drops every exchange.
type NopStorage struct{}

// Store does nothing.
func (NopStorage) Store(context.Context, Exchange) error { return nil }

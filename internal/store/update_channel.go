package store

import "context"

// UpdateChannelStore defines the interface for the set of channels that
// receive bot lifecycle notices.
type UpdateChannelStore interface {
	// Register adds channelID. Returns ErrChannelExists if it is already registered.
	Register(ctx context.Context, channelID string) error

	// Unregister removes channelID. Returns ErrChannelNotFound if it was not registered.
	Unregister(ctx context.Context, channelID string) error

	// IsRegistered reports whether channelID is registered.
	IsRegistered(ctx context.Context, channelID string) (bool, error)

	// List returns every registered channel ID in ascending order.
	List(ctx context.Context) ([]string, error)
}

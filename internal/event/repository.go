package event

import "context"

// Repository defines the storage interface for events and responses.
type Repository interface {
	// CreateEvent stores a new event and returns it with its ID set.
	CreateEvent(ctx context.Context, req CreateRequest) (*Event, error)

	// GetEventData returns the event and all of its responses.
	// Returns ErrEventNotFound if the event does not exist.
	GetEventData(ctx context.Context, id string) (*Data, error)

	// ListEvents returns all events, newest first.
	ListEvents(ctx context.Context) ([]*Event, error)

	// SaveResponse creates or replaces the response for req.Alias.
	// Aliases are matched case-insensitively.
	SaveResponse(ctx context.Context, req SaveRequest) error

	// DeleteResponse removes a participant's response.
	DeleteResponse(ctx context.Context, eventID, alias string) error

	// Close releases any resources held by the repository.
	Close() error
}

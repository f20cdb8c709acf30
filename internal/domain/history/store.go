package history

import "context"

// Store keeps completed results, most recent first.
type Store interface {
	Add(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Package store persists WritingActivityDay documents keyed by
// (user, date-key). Records are never deleted through this package.
package store

import (
	"context"
	"errors"

	"github.com/storyverse/server/models"
)

var ErrNotFound = errors.New("activity record not found")

// Store is the document boundary the activity service depends on.
type Store interface {
	// Get returns ErrNotFound when no record exists for (userID, date).
	Get(ctx context.Context, userID, date string) (*models.WritingActivityDay, error)
	// Put fully replaces the record stored under (userID, day.Date).
	Put(ctx context.Context, userID string, day *models.WritingActivityDay) error
	// List returns every record of the user in no particular order.
	List(ctx context.Context, userID string) ([]*models.WritingActivityDay, error)
}

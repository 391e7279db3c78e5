package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/storyverse/server/models"
)

const (
	usersCollection    = "users"
	activityCollection = "writingActivity"
)

// FirestoreStore keeps records at users/{userID}/writingActivity/{date}.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) activity(userID string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(userID).Collection(activityCollection)
}

func (s *FirestoreStore) Get(ctx context.Context, userID, date string) (*models.WritingActivityDay, error) {
	snap, err := s.activity(userID).Doc(date).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get %s/%s: %w", userID, date, err)
	}

	return decodeSnapshot(snap)
}

func (s *FirestoreStore) Put(ctx context.Context, userID string, day *models.WritingActivityDay) error {
	if _, err := s.activity(userID).Doc(day.Date).Set(ctx, day); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", userID, day.Date, err)
	}
	return nil
}

func (s *FirestoreStore) List(ctx context.Context, userID string) ([]*models.WritingActivityDay, error) {
	snaps, err := s.activity(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list %s: %w", userID, err)
	}

	out := make([]*models.WritingActivityDay, 0, len(snaps))
	for _, snap := range snaps {
		day, err := decodeSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

// decodeSnapshot trusts the document ID over the stored date field; older
// documents were written without one.
func decodeSnapshot(snap *firestore.DocumentSnapshot) (*models.WritingActivityDay, error) {
	var day models.WritingActivityDay
	if err := snap.DataTo(&day); err != nil {
		return nil, fmt.Errorf("decode %s: %w", snap.Ref.Path, err)
	}
	day.Date = snap.Ref.ID
	return &day, nil
}

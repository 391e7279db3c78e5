package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/storyverse/server/db"
	"github.com/storyverse/server/logging"
	"github.com/storyverse/server/models"
)

type PostgresStore struct {
	db  db.DBTX
	log logging.Logger
}

func NewPostgresStore(conn db.DBTX, log logging.Logger) *PostgresStore {
	return &PostgresStore{db: conn, log: log}
}

func (s *PostgresStore) Get(ctx context.Context, userID, date string) (*models.WritingActivityDay, error) {
	row := db.LogAndQueryRow(ctx, s.log, s.db,
		"SELECT date, word_count, story_ids, created_at, updated_at FROM writing_activity WHERE user_id = $1 AND date = $2",
		userID, date)

	day, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s/%s: %w", userID, date, err)
	}
	return day, nil
}

// Put upserts the record. created_at is only written on insert, so a
// stale CreatedAt from the caller cannot overwrite the stored one.
func (s *PostgresStore) Put(ctx context.Context, userID string, day *models.WritingActivityDay) error {
	storyIDs := day.StoryIDs
	if storyIDs == nil {
		storyIDs = []string{}
	}

	_, err := db.LogAndExec(ctx, s.log, s.db,
		`INSERT INTO writing_activity (user_id, date, word_count, story_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET word_count = EXCLUDED.word_count, story_ids = EXCLUDED.story_ids, updated_at = EXCLUDED.updated_at`,
		userID, day.Date, day.WordCount, pq.Array(storyIDs), day.CreatedAt, day.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres put %s/%s: %w", userID, day.Date, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, userID string) ([]*models.WritingActivityDay, error) {
	rows, err := db.LogAndQuery(ctx, s.log, s.db,
		"SELECT date, word_count, story_ids, created_at, updated_at FROM writing_activity WHERE user_id = $1",
		userID)
	if err != nil {
		return nil, fmt.Errorf("postgres list %s: %w", userID, err)
	}
	defer rows.Close()

	var out []*models.WritingActivityDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres list %s: %w", userID, err)
		}
		out = append(out, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres list %s: %w", userID, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(row scanner) (*models.WritingActivityDay, error) {
	var day models.WritingActivityDay
	if err := row.Scan(&day.Date, &day.WordCount, pq.Array(&day.StoryIDs), &day.CreatedAt, &day.UpdatedAt); err != nil {
		return nil, err
	}
	return &day, nil
}

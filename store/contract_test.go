package store

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyverse/server/models"
)

// testStoreContract exercises behaviour every Store must share.
func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)
	updated := created.Add(3 * time.Hour)

	_, err := s.Get(ctx, "u1", "2024-05-01")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	first := &models.WritingActivityDay{Date: "2024-05-01", WordCount: 10, StoryIDs: []string{"s1"}, CreatedAt: created, UpdatedAt: created}
	require.NoError(t, s.Put(ctx, "u1", first))

	got, err := s.Get(ctx, "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", got.Date)
	assert.Equal(t, 10, got.WordCount)
	assert.Equal(t, []string{"s1"}, got.StoryIDs)
	assert.True(t, created.Equal(got.CreatedAt))

	second := &models.WritingActivityDay{Date: "2024-05-01", WordCount: 42, StoryIDs: []string{"s1", "s2"}, CreatedAt: created, UpdatedAt: updated}
	require.NoError(t, s.Put(ctx, "u1", second))
	require.NoError(t, s.Put(ctx, "u1", &models.WritingActivityDay{Date: "2024-05-02", WordCount: 5, CreatedAt: updated, UpdatedAt: updated}))
	require.NoError(t, s.Put(ctx, "u2", &models.WritingActivityDay{Date: "2024-05-01", WordCount: 7, CreatedAt: updated, UpdatedAt: updated}))

	got, err = s.Get(ctx, "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 42, got.WordCount)
	assert.Equal(t, []string{"s1", "s2"}, got.StoryIDs)
	assert.True(t, updated.Equal(got.UpdatedAt))
	assert.True(t, created.Equal(got.CreatedAt))

	list, err = s.List(ctx, "u1")
	require.NoError(t, err)
	var dates []string
	for _, d := range list {
		dates = append(dates, d.Date)
	}
	sort.Strings(dates)
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, dates)
}

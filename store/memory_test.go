package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyverse/server/models"
)

func TestMemoryStoreContract(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	day := &models.WritingActivityDay{Date: "2024-01-01", WordCount: 1, StoryIDs: []string{"a"}}
	require.NoError(t, s.Put(ctx, "u", day))
	day.StoryIDs[0] = "mutated"
	day.WordCount = 99

	got, err := s.Get(ctx, "u", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.StoryIDs)
	assert.Equal(t, 1, got.WordCount)

	got.StoryIDs[0] = "again"
	again, err := s.Get(ctx, "u", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "a", again.StoryIDs[0])
}

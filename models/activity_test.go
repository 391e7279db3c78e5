package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddStorySuppressesDuplicates(t *testing.T) {
	d := &WritingActivityDay{}
	d.AddStory("s1")
	d.AddStory("s2")
	d.AddStory("s1")
	d.AddStory("")

	assert.Equal(t, []string{"s1", "s2"}, d.StoryIDs)
	assert.True(t, d.HasStory("s2"))
	assert.False(t, d.HasStory("s3"))
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Now()
	d := &WritingActivityDay{Date: "2024-01-01", WordCount: 10, StoryIDs: []string{"a"}, CreatedAt: now, UpdatedAt: now}

	c := d.Clone()
	c.StoryIDs[0] = "b"
	c.WordCount = 20

	assert.Equal(t, "a", d.StoryIDs[0])
	assert.Equal(t, 10, d.WordCount)

	var nilDay *WritingActivityDay
	assert.Nil(t, nilDay.Clone())
}

func TestCloneKeepsEmptyStorySet(t *testing.T) {
	d := &WritingActivityDay{Date: "2024-01-01", WordCount: 10, StoryIDs: []string{}}

	c := d.Clone()
	assert.NotNil(t, c.StoryIDs)
	assert.Empty(t, c.StoryIDs)

	raw, err := json.Marshal(c)
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"storyIds":[]`)

	c = (&WritingActivityDay{Date: "2024-01-01"}).Clone()
	assert.Nil(t, c.StoryIDs)
}

package models

import "time"

// WritingActivityDay is one user's writing on one calendar day, addressed by
// (user, Date). CreatedAt is set once and never changed afterwards.
//
// WordCount is the total the editor reported on its latest save that day. It
// is overwritten on each save, never accumulated.
type WritingActivityDay struct {
	Date      string    `json:"date" firestore:"date"`
	WordCount int       `json:"wordCount" firestore:"wordCount"`
	StoryIDs  []string  `json:"storyIds" firestore:"storyIds"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// HasStory reports whether id was already touched that day.
func (d *WritingActivityDay) HasStory(id string) bool {
	for _, s := range d.StoryIDs {
		if s == id {
			return true
		}
	}
	return false
}

// AddStory unions id into StoryIDs. Empty ids are ignored.
func (d *WritingActivityDay) AddStory(id string) {
	if id == "" || d.HasStory(id) {
		return
	}
	d.StoryIDs = append(d.StoryIDs, id)
}

// Clone returns a deep copy so stores never share slices with callers. An
// empty story set stays empty rather than becoming nil.
func (d *WritingActivityDay) Clone() *WritingActivityDay {
	if d == nil {
		return nil
	}
	c := *d
	if d.StoryIDs != nil {
		c.StoryIDs = make([]string, len(d.StoryIDs))
		copy(c.StoryIDs, d.StoryIDs)
	}
	return &c
}

// ActivityRange is the set of active days for a user inside [Start, End].
type ActivityRange struct {
	UserID string   `json:"userId"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Dates  []string `json:"dates"`
}

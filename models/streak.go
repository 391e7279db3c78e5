package models

// Streak is the streak summary shown on a writer's dashboard.
type Streak struct {
	UserID         string `json:"userId"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
}

package activity

import (
	"context"
	"sort"
	"time"

	"github.com/storyverse/server/datekey"
	"github.com/storyverse/server/models"
)

// CalculateCurrentStreak counts consecutive active days ending today.
//
// If today has no activity yet but yesterday does, the streak is counted
// from yesterday. Only the last lookbackDays are fetched and at most
// maxStreakDays are counted.
func (s *Service) CalculateCurrentStreak(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}

	today := datekey.Noon(s.localNow())
	dates := s.FetchActivityDates(ctx, userID, datekey.AddDays(today, -s.lookbackDays), today)

	return currentStreak(dates, today, s.maxStreakDays)
}

// CalculateLongestStreak returns the longest run of consecutive active days
// in the user's whole history. It is not windowed or capped.
func (s *Service) CalculateLongestStreak(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}

	days, err := s.store.List(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to fetch writing activity", "user", userID, "error", err)
		return 0
	}

	return longestStreak(s.allKeys(ctx, days))
}

// Summary reports both streaks and the latest active day from one listing.
func (s *Service) Summary(ctx context.Context, userID string) models.Streak {
	summary := models.Streak{UserID: userID}
	if userID == "" {
		return summary
	}

	days, err := s.store.List(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to fetch writing activity", "user", userID, "error", err)
		return summary
	}

	today := datekey.Noon(s.localNow())
	window := s.filterDays(ctx, days, datekey.Format(datekey.AddDays(today, -s.lookbackDays)), datekey.Format(today))
	keys := s.allKeys(ctx, days)

	summary.CurrentStreak = currentStreak(window, today, s.maxStreakDays)
	summary.LongestStreak = longestStreak(keys)
	if len(keys) > 0 {
		summary.LastActiveDate = keys[len(keys)-1]
	}
	return summary
}

func (s *Service) allKeys(ctx context.Context, days []*models.WritingActivityDay) []string {
	return s.filterDays(ctx, days, "0000-01-01", "9999-12-31").Sorted()
}

// currentStreak walks back from today one calendar day at a time. today must
// be a noon anchor so AddDays never crosses a DST-shifted midnight.
func currentStreak(dates DateSet, today time.Time, maxDays int) int {
	day := today
	if !dates.Has(datekey.Format(day)) {
		day = datekey.AddDays(today, -1)
		if !dates.Has(datekey.Format(day)) {
			return 0
		}
	}

	streak := 0
	for i := 0; i < maxDays; i++ {
		if !dates.Has(datekey.Format(day)) {
			break
		}
		streak++
		day = datekey.AddDays(day, -1)
	}
	return streak
}

// longestStreak scans keys in calendar order for the longest run where each
// day follows the previous one by exactly one day.
func longestStreak(keys []string) int {
	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		t, err := datekey.Parse(k, time.UTC)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		switch datekey.DaysBetween(dates[i-1], dates[i]) {
		case 0:
			continue
		case 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

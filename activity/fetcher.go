package activity

import (
	"context"
	"sort"
	"time"

	"github.com/storyverse/server/datekey"
	"github.com/storyverse/server/models"
)

// DateSet is a set of date-keys.
type DateSet map[string]struct{}

func (d DateSet) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d DateSet) Add(key string) {
	d[key] = struct{}{}
}

// Sorted returns the keys in ascending (chronological) order.
func (d DateSet) Sorted() []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FetchActivityDates returns the active date-keys of userID between start
// and end inclusive. Both bounds are read as calendar days in their own
// location. The user's whole history is loaded and filtered here; the store
// is never asked to filter.
func (s *Service) FetchActivityDates(ctx context.Context, userID string, start, end time.Time) DateSet {
	if userID == "" {
		s.log.Info(ctx, "activity dates not fetched: empty user id")
		return DateSet{}
	}

	days, err := s.store.List(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "failed to fetch writing activity", "user", userID, "error", err)
		return DateSet{}
	}

	return s.filterDays(ctx, days, datekey.Format(start), datekey.Format(end))
}

// filterDays keeps the well-formed keys in [startKey, endKey]. Date-keys sort
// lexically in calendar order, so plain string comparison is enough once a
// key is known to decode.
func (s *Service) filterDays(ctx context.Context, days []*models.WritingActivityDay, startKey, endKey string) DateSet {
	set := DateSet{}
	for _, day := range days {
		if !datekey.Valid(day.Date) {
			s.log.Warn(ctx, "skipping activity record with malformed date", "date", day.Date)
			continue
		}
		if day.Date < startKey || day.Date > endKey {
			continue
		}
		set.Add(day.Date)
	}
	return set
}

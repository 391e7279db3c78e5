package activity

import (
	"context"
	"errors"

	"github.com/storyverse/server/datekey"
	"github.com/storyverse/server/models"
	"github.com/storyverse/server/store"
)

// RecordWritingActivity creates or updates today's activity record for
// userID.
//
// wordCount must be the CURRENT TOTAL of the content being saved, not the
// words added since the last save. It replaces the stored count; passing a
// delta silently corrupts the day's figure.
//
// storyID is optional and is added to the day's story set. Calls with an
// empty userID or a count below the threshold are ignored. The read and the
// write are not transactional: concurrent calls for the same user and day race
// and the last write wins.
func (s *Service) RecordWritingActivity(ctx context.Context, userID string, wordCount int, storyID string) {
	log := s.log.With("user", userID)

	if userID == "" {
		log.Info(ctx, "activity not recorded: empty user id")
		return
	}
	if wordCount < s.minWordCount {
		log.Info(ctx, "activity not recorded: below threshold", "words", wordCount, "min", s.minWordCount)
		return
	}

	now := s.localNow()
	key := datekey.Format(now)
	log = log.With("date", key)

	day, err := s.store.Get(ctx, userID, key)
	created := false
	switch {
	case errors.Is(err, store.ErrNotFound):
		day = &models.WritingActivityDay{
			Date:      key,
			WordCount: wordCount,
			StoryIDs:  []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		day.AddStory(storyID)
		created = true
	case err != nil:
		log.Error(ctx, "failed to read writing activity", "error", err)
		return
	default:
		day.WordCount = wordCount
		day.AddStory(storyID)
		day.UpdatedAt = now
	}

	if err := s.store.Put(ctx, userID, day); err != nil {
		log.Error(ctx, "failed to write writing activity", "error", err)
		return
	}
	log.Debug(ctx, "writing activity recorded", "words", wordCount, "created", created)

	if created && s.notifier != nil && s.milestoneEvery >= 1 {
		notifyCtx := context.WithoutCancel(ctx)
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.notifyMilestone(notifyCtx, userID)
		}()
	}
}

// notifyMilestone runs in the background after the first qualifying save of a
// day, the only point at which the current streak can grow. The caller's
// request may already be finished, so ctx carries no cancellation.
func (s *Service) notifyMilestone(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	streak := s.CalculateCurrentStreak(ctx, userID)
	if streak == 0 || streak%s.milestoneEvery != 0 {
		return
	}

	if err := s.notifier.StreakMilestone(ctx, userID, streak); err != nil {
		s.log.Warn(ctx, "streak milestone notification failed", "user", userID, "streak", streak, "error", err)
		return
	}
	s.log.Info(ctx, "streak milestone notified", "user", userID, "streak", streak)
}

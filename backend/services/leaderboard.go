package services

import (
	"context"
	"time"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/engine"
	"dsatracker/backend/models"
)

// GetLeaderboard ranks every user by overall progress. The shared entries may come from
// the cache; the viewer's own entry is always read fresh and merged before sorting.
// A viewerID of 0 returns the ranking without substitution.
func (s *TrackerService) GetLeaderboard(ctx context.Context, viewerID uint) ([]models.LeaderboardEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entries, err := s.leaderboardEntries(ctx)
	if err != nil {
		return nil, err
	}

	var viewer *models.LeaderboardEntry
	if viewerID != 0 {
		user, err := s.users.GetWithTopics(dbctx.Context{Ctx: ctx}, viewerID)
		if err != nil {
			return nil, classify("load viewer", err)
		}
		entry := engine.NewLeaderboardEntry(*user)
		viewer = &entry
	}

	return engine.Rank(entries, viewer), nil
}

func (s *TrackerService) leaderboardEntries(ctx context.Context) ([]models.LeaderboardEntry, error) {
	cached, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.LeaderboardCache.WithLabelValues("error").Inc()
		s.log.Warn("Leaderboard cache read failed, recomputing", "error", err)
	case ok:
		s.metrics.LeaderboardCache.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		s.metrics.LeaderboardCache.WithLabelValues("miss").Inc()
	}

	// The shared rebuild is detached from caller cancellation. Each caller waits only
	// as long as its own context allows.
	ch := s.group.DoChan("leaderboard", func() (interface{}, error) {
		buildCtx, cancel := s.withTimeout(context.WithoutCancel(ctx))
		defer cancel()

		start := time.Now()
		users, err := s.users.ListWithTopics(dbctx.Context{Ctx: buildCtx})
		if err != nil {
			return nil, classify("list users", err)
		}

		entries := make([]models.LeaderboardEntry, 0, len(users))
		for _, u := range users {
			entries = append(entries, engine.NewLeaderboardEntry(u))
		}
		entries = engine.Rank(entries, nil)
		s.metrics.LeaderboardBuild.Observe(time.Since(start).Seconds())

		if err := s.cache.Set(buildCtx, entries); err != nil {
			s.log.Warn("Leaderboard cache write failed", "error", err)
		}
		return entries, nil
	})

	select {
	case <-ctx.Done():
		return nil, classify("wait for leaderboard", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.LeaderboardEntry), nil
	}
}

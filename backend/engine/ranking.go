package engine

import (
	"cmp"
	"math"
	"slices"

	"dsatracker/backend/models"
)

// OverallProgress is the rounded mean of topic progress values.
func OverallProgress(topics []models.Topic) (int, error) {
	if len(topics) == 0 {
		return 0, ErrNoTopics
	}
	sum := 0
	for _, t := range topics {
		sum += t.Progress
	}
	return int(math.Round(float64(sum) / float64(len(topics)))), nil
}

// NewLeaderboardEntry computes a fresh entry for user.
func NewLeaderboardEntry(user models.User) models.LeaderboardEntry {
	entry := models.LeaderboardEntry{
		UserID:      user.ID,
		Name:        user.Username,
		Streak:      user.Streak,
		Points:      user.Points,
		Topics:      user.Topics,
		GithubURL:   user.GithubURL,
		LeetcodeURL: user.LeetcodeURL,
		LinkedinURL: user.LinkedinURL,
	}
	if progress, err := OverallProgress(user.Topics); err == nil {
		entry.Progress = &progress
	} else {
		entry.NoTopics = true
	}
	return entry
}

// Rank orders entries by overall progress, highest first, breaking ties by name.
// When viewer is set it replaces any entry with the same user id, or is added.
// Entries without topics go last. The input slice is not modified.
func Rank(entries []models.LeaderboardEntry, viewer *models.LeaderboardEntry) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, 0, len(entries)+1)
	for _, e := range entries {
		if viewer != nil && e.UserID == viewer.UserID {
			continue
		}
		ranked = append(ranked, e)
	}
	if viewer != nil {
		ranked = append(ranked, *viewer)
	}

	slices.SortStableFunc(ranked, func(a, b models.LeaderboardEntry) int {
		switch {
		case a.Progress == nil && b.Progress != nil:
			return 1
		case a.Progress != nil && b.Progress == nil:
			return -1
		case a.Progress != nil && b.Progress != nil:
			if c := cmp.Compare(*b.Progress, *a.Progress); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return ranked
}

// PointsRank returns the 1-based position of userID in users ordered by points
// (highest first, lower id wins ties), or 0 when absent or beyond limit.
func PointsRank(userID uint, users []models.User, limit int) int {
	ordered := slices.Clone(users)
	slices.SortStableFunc(ordered, func(a, b models.User) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for i, u := range ordered {
		if i >= limit {
			break
		}
		if u.ID == userID {
			return i + 1
		}
	}
	return 0
}

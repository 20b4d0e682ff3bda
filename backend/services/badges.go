package services

import (
	"time"

	"gorm.io/gorm"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/engine"
	"dsatracker/backend/models"
)

// rankBadgePlaces is how deep into the points table rank badges reach.
const rankBadgePlaces = 3

// evaluateBadges awards every catalog badge user currently qualifies for and returns the
// names that were new. It runs inside its own savepoint so a failure rolls back only the
// badge rows; the error is logged and the caller's transaction carries on.
func (s *TrackerService) evaluateBadges(dbc dbctx.Context, user *models.User, now time.Time) []string {
	var awarded []string
	err := dbc.Conn(s.db).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		awarded = awarded[:0]

		stats, err := s.badgeStats(inner, user)
		if err != nil {
			return err
		}
		for _, rule := range engine.QualifyingBadges(stats) {
			created, err := s.badges.Award(inner, user.ID, rule.Name, rule.Description, now)
			if err != nil {
				return err
			}
			if created {
				awarded = append(awarded, rule.Name)
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.BadgeFailures.Inc()
		s.log.Error("Badge evaluation failed, continuing without badges", "user_id", user.ID, "error", err)
		return nil
	}
	return awarded
}

func (s *TrackerService) badgeStats(dbc dbctx.Context, user *models.User) (engine.BadgeStats, error) {
	topics, err := s.topics.ListByUser(dbc, user.ID)
	if err != nil {
		return engine.BadgeStats{}, err
	}
	top, err := s.users.TopByPoints(dbc, rankBadgePlaces)
	if err != nil {
		return engine.BadgeStats{}, err
	}

	stats := engine.BadgeStats{
		Streak:     user.Streak,
		Points:     user.Points,
		PointsRank: engine.PointsRank(user.ID, top, rankBadgePlaces),
	}
	for _, t := range topics {
		stats.EasySolved += t.LeetcodeEasy
		stats.MediumSolved += t.LeetcodeMedium
		stats.HardSolved += t.LeetcodeHard
	}
	return stats, nil
}

// groupBadges buckets held badges by catalog kind. Names no longer in the catalog land under "other".
func groupBadges(badges []models.Badge) map[string][]models.Badge {
	groups := make(map[string][]models.Badge)
	for _, b := range badges {
		kind := "other"
		if rule, ok := engine.LookupBadge(b.Name); ok {
			kind = string(rule.Kind)
		}
		groups[kind] = append(groups[kind], b)
	}
	return groups
}

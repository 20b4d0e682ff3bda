package engine

import "time"

// PointsPerActiveDay is credited once for every day with at least one update.
const PointsPerActiveDay = 10

type StreakOutcome int

const (
	StreakUnchanged StreakOutcome = iota
	StreakContinued
	StreakReset
)

func (o StreakOutcome) String() string {
	switch o {
	case StreakUnchanged:
		return "unchanged"
	case StreakContinued:
		return "continued"
	case StreakReset:
		return "reset"
	default:
		return "unknown"
	}
}

// StreakState is the streak-related slice of a user. A zero LastActive means never active.
type StreakState struct {
	Streak     int
	Points     int
	LastActive time.Time
}

// Advance applies one day of activity on today to state.
//
// Same day is a no-op. Exactly one day after LastActive continues the streak. Any other
// relation (a gap, a LastActive after today, or no previous activity) restarts it at 1.
// Points grow by PointsPerActiveDay on every non-no-op outcome.
func (c *Calendar) Advance(state StreakState, now time.Time) (StreakState, StreakOutcome) {
	today := c.Today(now)

	if !state.LastActive.IsZero() {
		switch c.DaysBetween(state.LastActive, today) {
		case 0:
			return state, StreakUnchanged
		case 1:
			return StreakState{
				Streak:     state.Streak + 1,
				Points:     state.Points + PointsPerActiveDay,
				LastActive: today,
			}, StreakContinued
		}
	}

	return StreakState{
		Streak:     1,
		Points:     state.Points + PointsPerActiveDay,
		LastActive: today,
	}, StreakReset
}

package services

import (
	"context"
	"fmt"
	"time"

	"dsatracker/backend/dbctx"
	"dsatracker/backend/models"
)

// HistoryLookbackYears is the default heatmap window.
const HistoryLookbackYears = 1

// GetActivityHistory returns per-day update counts in [from, to], oldest first.
// Empty bounds default to one year before today and today, in the service calendar.
func (s *TrackerService) GetActivityHistory(ctx context.Context, userID uint, from, to string, now time.Time) ([]models.DayCount, error) {
	today := s.cal.Today(now)

	toDay := today
	if to != "" {
		parsed, err := s.cal.Parse(to)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		toDay = parsed
	}
	fromDay := toDay.AddDate(-HistoryLookbackYears, 0, 0)
	if from != "" {
		parsed, err := s.cal.Parse(from)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		fromDay = parsed
	}
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidInput, s.cal.Format(fromDay), s.cal.Format(toDay))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	dbc := dbctx.Context{Ctx: ctx}

	if _, err := s.users.GetByID(dbc, userID); err != nil {
		return nil, classify("load user", err)
	}
	days, err := s.activity.ListInRange(dbc, userID, s.cal.Format(fromDay), s.cal.Format(toDay))
	if err != nil {
		return nil, classify("list activity", err)
	}
	return days, nil
}

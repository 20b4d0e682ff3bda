package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Calendar maps instants to calendar days in one fixed local offset.
type Calendar struct {
	loc *time.Location
}

// NewCalendar parses offsets of the form "+05:30", "-08:00" or "Z".
func NewCalendar(offset string) (*Calendar, error) {
	offset = strings.TrimSpace(offset)
	if offset == "" || offset == "Z" || offset == "UTC" {
		return &Calendar{loc: time.UTC}, nil
	}

	sign := 1
	switch offset[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("timezone offset %q: missing sign", offset)
	}

	hh, mm, ok := strings.Cut(offset[1:], ":")
	if !ok {
		return nil, fmt.Errorf("timezone offset %q: expected ±HH:MM", offset)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("timezone offset %q: bad hours", offset)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return nil, fmt.Errorf("timezone offset %q: bad minutes", offset)
	}

	seconds := sign * (hours*3600 + minutes*60)
	return &Calendar{loc: time.FixedZone("UTC"+offset, seconds)}, nil
}

func MustCalendar(offset string) *Calendar {
	cal, err := NewCalendar(offset)
	if err != nil {
		panic(err)
	}
	return cal
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Today returns local midnight of the day containing now.
func (c *Calendar) Today(now time.Time) time.Time {
	local := now.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

func (c *Calendar) Format(day time.Time) string {
	return day.In(c.loc).Format(DayLayout)
}

func (c *Calendar) Parse(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DayLayout, strings.TrimSpace(s), c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, s)
	}
	return day, nil
}

// DaysBetween returns the number of calendar days from a to b; negative when b is before a.
func (c *Calendar) DaysBetween(a, b time.Time) int {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

package store

import (
	"time"

	"go.uber.org/zap"
)

const day = 24 * time.Hour

// expireStreak resets the streak when more than one full day has elapsed
// since the last activity. Elapsed time is measured in whole 24h periods,
// not calendar dates.
func (s *Store) expireStreak() {
	if !s.hasActivity {
		return
	}
	elapsedDays := int64(s.now().Sub(s.lastActivity) / day)
	if elapsedDays <= 1 {
		return
	}
	s.logger.Info("streak expired",
		zap.Int("streak", s.streak),
		zap.Int64("days_since_activity", elapsedDays),
	)
	s.streak = 0
	s.saveStreak()
}

// advanceStreak counts now as an active day. A day already counted is a no-op.
func (s *Store) advanceStreak(now time.Time) {
	if s.hasActivity && sameDate(s.lastActivity, now) {
		return
	}
	s.streak++
	s.lastActivity = time.UnixMilli(now.UnixMilli())
	s.hasActivity = true
}

// sameDate compares calendar dates in the location of b
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek is midnight of the most recent Sunday
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// TodayCount counts completions in [midnight today, midnight + 24h)
func (s *Store) TodayCount() int {
	start := startOfDay(s.now()).UnixMilli()
	end := start + day.Milliseconds()

	count := 0
	for _, c := range s.completed {
		if c.CompletedAt >= start && c.CompletedAt < end {
			count++
		}
	}
	return count
}

// WeekCount counts completions since the start of the calendar week
func (s *Store) WeekCount() int {
	start := startOfWeek(s.now()).UnixMilli()

	count := 0
	for _, c := range s.completed {
		if c.CompletedAt >= start {
			count++
		}
	}
	return count
}

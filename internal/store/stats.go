package store

import (
	"slices"

	"github.com/tgienger/stickyjar/internal/models"
)

// Achievement thresholds
const (
	dailyGoal  = 5
	streakGoal = 7
)

// PendingByCategory groups pending tasks by category. Groups are sorted by
// name and keep the newest-first order inside each group.
func (s *Store) PendingByCategory() []models.CategoryGroup {
	index := make(map[string]int)
	var groups []models.CategoryGroup
	for _, t := range s.pending {
		name := t.CategoryOrDefault()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, models.CategoryGroup{Name: name})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	slices.SortFunc(groups, func(a, b models.CategoryGroup) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return groups
}

// JarTokens returns the newest completed records that fit in the jar
func (s *Store) JarTokens() []models.CompletedTask {
	start := max(len(s.completed)-s.capacity, 0)
	return slices.Clone(s.completed[start:])
}

// JarFill is the jar fill percentage, capped at 100
func (s *Store) JarFill() float64 {
	return min(float64(len(s.completed))/float64(s.capacity)*100, 100)
}

// Achievements reports the four milestones in display order
func (s *Store) Achievements() []models.Achievement {
	return []models.Achievement{
		{Name: "First Task", Unlocked: len(s.completed) > 0},
		{Name: "5 in a Day", Unlocked: s.TodayCount() >= dailyGoal},
		{Name: "Week Streak", Unlocked: s.streak >= streakGoal},
		{Name: "Jar Master", Unlocked: len(s.completed) >= s.capacity},
	}
}

// Stats summarizes progress
func (s *Store) Stats() models.Stats {
	return models.Stats{
		Active:       len(s.pending),
		Completed:    len(s.completed),
		Streak:       s.streak,
		Today:        s.TodayCount(),
		Week:         s.WeekCount(),
		JarCapacity:  s.capacity,
		JarFill:      s.JarFill(),
		JarFull:      len(s.completed) >= s.capacity,
		Achievements: s.Achievements(),
	}
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/stickyjar/internal/models"
)

func TestPendingByCategory(t *testing.T) {
	s, _, clock := newTestStore(t)

	for _, d := range []models.Draft{
		{Text: "inbox"},
		{Text: "email", Category: "work"},
		{Text: "dishes", Category: "home"},
		{Text: "report", Category: "work"},
	} {
		_, err := s.CreateTask(d)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	groups := s.PendingByCategory()
	require.Len(t, groups, 3)
	assert.Equal(t, "general", groups[0].Name)
	assert.Equal(t, "home", groups[1].Name)
	assert.Equal(t, "work", groups[2].Name)

	require.Len(t, groups[2].Tasks, 2)
	assert.Equal(t, "report", groups[2].Tasks[0].Text)
	assert.Equal(t, "email", groups[2].Tasks[1].Text)
}

func TestJarAndAchievements(t *testing.T) {
	s, _, _ := newTestStore(t, WithJarCapacity(2))

	stats := s.Stats()
	assert.Equal(t, 0.0, stats.JarFill)
	assert.False(t, stats.JarFull)
	for _, a := range stats.Achievements {
		assert.False(t, a.Unlocked, a.Name)
	}

	var ids []string
	for i := 0; i < 3; i++ {
		task, err := s.CreateTask(models.Draft{Text: "x"})
		require.NoError(t, err)
		_, ok := s.CompleteTask(task.ID)
		require.True(t, ok)
		ids = append(ids, task.ID)
	}

	stats = s.Stats()
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 3, stats.Completed)
	assert.Equal(t, 100.0, stats.JarFill)
	assert.True(t, stats.JarFull)
	assert.Equal(t, 2, stats.JarCapacity)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 3, stats.Today)
	assert.Equal(t, 3, stats.Week)

	unlocked := map[string]bool{}
	for _, a := range stats.Achievements {
		unlocked[a.Name] = a.Unlocked
	}
	assert.True(t, unlocked["First Task"])
	assert.False(t, unlocked["5 in a Day"])
	assert.False(t, unlocked["Week Streak"])
	assert.True(t, unlocked["Jar Master"])

	tokens := s.JarTokens()
	require.Len(t, tokens, 2)
	assert.Equal(t, ids[1], tokens[0].ID)
	assert.Equal(t, ids[2], tokens[1].ID)
}

func TestJarFill_Partial(t *testing.T) {
	s, _, _ := newTestStore(t)

	task, err := s.CreateTask(models.Draft{Text: "x"})
	require.NoError(t, err)
	_, ok := s.CompleteTask(task.ID)
	require.True(t, ok)

	assert.InDelta(t, 2.0, s.JarFill(), 1e-9)
	assert.Len(t, s.JarTokens(), 1)
}

func TestSnapshot(t *testing.T) {
	s, _, _ := newTestStore(t)

	snap := s.Snapshot()
	assert.Empty(t, snap.Tasks)
	assert.Zero(t, snap.LastActivity)

	task, err := s.CreateTask(models.Draft{Text: "x"})
	require.NoError(t, err)
	_, ok := s.CompleteTask(task.ID)
	require.True(t, ok)

	snap = s.Snapshot()
	assert.Equal(t, baseTime.UnixMilli(), snap.LastActivity)
	assert.Equal(t, 1, snap.Streak)
	assert.Len(t, snap.Completed, 1)
}

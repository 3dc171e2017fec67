package store

import "github.com/tgienger/stickyjar/internal/models"

// Snapshot is the persisted state as a single document
type Snapshot struct {
	Tasks        []models.Task          `json:"tasks" yaml:"tasks"`
	Completed    []models.CompletedTask `json:"completed" yaml:"completed"`
	Streak       int                    `json:"streak" yaml:"streak"`
	LastActivity int64                  `json:"lastActivity,omitempty" yaml:"lastActivity,omitempty"`
}

// Snapshot copies the current state
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Tasks:     s.Pending(),
		Completed: s.Completed(),
		Streak:    s.streak,
	}
	if s.hasActivity {
		snap.LastActivity = s.lastActivity.UnixMilli()
	}
	return snap
}

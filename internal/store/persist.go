package store

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tgienger/stickyjar/internal/models"
)

// Persisted keys
const (
	KeyTasks        = "sticky-notes-tasks"
	KeyCompleted    = "sticky-notes-completed"
	KeyStreak       = "sticky-notes-streak"
	KeyLastActivity = "sticky-notes-last-activity"
)

func (s *Store) load() {
	if raw, ok := s.read(KeyTasks); ok {
		var tasks []models.Task
		if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
			s.logger.Warn("ignoring malformed value", zap.String("key", KeyTasks), zap.Error(err))
		} else {
			for _, t := range tasks {
				if t.IsCompleted {
					continue
				}
				s.pending = append(s.pending, t)
				s.issued[t.ID] = struct{}{}
			}
		}
	}

	if raw, ok := s.read(KeyCompleted); ok {
		var completed []models.CompletedTask
		if err := json.Unmarshal([]byte(raw), &completed); err != nil {
			s.logger.Warn("ignoring malformed value", zap.String("key", KeyCompleted), zap.Error(err))
		} else {
			for _, c := range completed {
				s.completed = append(s.completed, c)
				s.issued[c.ID] = struct{}{}
			}
		}
	}

	if raw, ok := s.read(KeyStreak); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			s.logger.Warn("ignoring malformed value", zap.String("key", KeyStreak), zap.Error(err))
		case n < 0:
			s.logger.Warn("ignoring negative streak", zap.Int("streak", n))
		default:
			s.streak = n
		}
	}

	if raw, ok := s.read(KeyLastActivity); ok {
		ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			s.logger.Warn("ignoring malformed value", zap.String("key", KeyLastActivity), zap.Error(err))
		} else {
			s.lastActivity = time.UnixMilli(ms)
			s.hasActivity = true
		}
	}
}

// read returns the stored value for key. Read errors count as a missing value.
func (s *Store) read(key string) (string, bool) {
	raw, ok, err := s.kv.Load(key)
	if err != nil {
		s.logger.Warn("failed to read persisted value", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, ok
}

// write stores value under key. Failures are logged and otherwise ignored;
// the in-memory state stays authoritative.
func (s *Store) write(key, value string) {
	if err := s.kv.Save(key, value); err != nil {
		s.logger.Error("failed to persist value", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) writeJSON(key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}
	s.write(key, string(payload))
}

func (s *Store) saveTasks() {
	s.writeJSON(KeyTasks, s.pending)
}

func (s *Store) saveCompleted() {
	s.writeJSON(KeyCompleted, s.completed)
}

func (s *Store) saveStreak() {
	s.write(KeyStreak, strconv.Itoa(s.streak))
}

func (s *Store) saveLastActivity() {
	if !s.hasActivity {
		return
	}
	s.write(KeyLastActivity, strconv.FormatInt(s.lastActivity.UnixMilli(), 10))
}

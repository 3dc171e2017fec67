// Package store owns the sticky note task lifecycle: pending tasks, the
// completed-task jar and the daily streak. State lives in memory and is
// written through to a key-value port after every mutation.
//
// A Store is not safe for concurrent use. Every operation runs its full
// read-modify-persist sequence before returning, so callers that share a
// Store between goroutines must serialize access themselves.
package store

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tgienger/stickyjar/internal/models"
)

// DefaultJarCapacity is the number of tokens that fill the jar
const DefaultJarCapacity = 50

// KV is the persistence port. Load reports ok=false for a missing key.
type KV interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

// Rand supplies jar positions and preset colors. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.Intn(n) }

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand replaces the randomness source
func WithRand(r Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithLogger sets the logger used for persistence diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the task id generator
func WithIDGenerator(fn func(time.Time) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithJarCapacity sets how many tokens fill the jar
func WithJarCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// Store is the task and completion state manager
type Store struct {
	kv       KV
	logger   *zap.Logger
	now      func() time.Time
	rand     Rand
	newID    func(time.Time) string
	capacity int

	pending      []models.Task // newest first
	completed    []models.CompletedTask
	streak       int
	lastActivity time.Time
	hasActivity  bool

	issued map[string]struct{}
}

// Open loads persisted state from kv and returns a ready Store.
// Missing or corrupt values fall back to empty state; Open never fails.
func Open(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		logger:    zap.NewNop(),
		now:       time.Now,
		rand:      globalRand{},
		newID:     newTaskID,
		capacity:  DefaultJarCapacity,
		pending:   []models.Task{},
		completed: []models.CompletedTask{},
		issued:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	s.expireStreak()
	return s
}

// newTaskID concatenates the creation time in milliseconds with a random suffix.
func newTaskID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix
}

func (s *Store) nextID(now time.Time) string {
	base := s.newID(now)
	id := base
	for n := 1; s.isIssued(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	s.issued[id] = struct{}{}
	return id
}

func (s *Store) isIssued(id string) bool {
	_, ok := s.issued[id]
	return ok
}

// CreateTask validates the draft and prepends a new pending task.
// An invalid draft leaves the store untouched.
func (s *Store) CreateTask(draft models.Draft) (models.Task, error) {
	d, err := draft.Normalize()
	if err != nil {
		return models.Task{}, err
	}

	now := s.now()
	task := models.Task{
		ID:               s.nextID(now),
		Text:             d.Text,
		Color:            d.Color,
		CreatedAt:        now.UnixMilli(),
		EstimatedMinutes: d.EstimatedMinutes,
		Category:         d.Category,
		IsCompleted:      false,
	}

	s.pending = slices.Insert(s.pending, 0, task)
	s.saveTasks()

	s.logger.Debug("task created", zap.String("id", task.ID), zap.String("color", string(task.Color)))
	return task, nil
}

// CreatePreset creates the preset at index with a random palette color.
func (s *Store) CreatePreset(index int) (models.Task, error) {
	if index < 0 || index >= len(models.Presets) {
		return models.Task{}, models.ErrInvalidDraft
	}
	p := models.Presets[index]
	return s.CreateTask(models.Draft{
		Text:             p.Text,
		Color:            models.Palette[s.rand.IntN(len(models.Palette))],
		EstimatedMinutes: p.EstimatedMinutes,
		Category:         p.Category,
	})
}

// CompleteTask moves a pending task into the jar. It reports false and
// changes nothing when id is not pending.
func (s *Store) CompleteTask(id string) (models.CompletedTask, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.CompletedTask{}, false
	}

	task := s.pending[idx]
	now := s.now()

	completedAt := now.UnixMilli()
	if n := len(s.completed); n > 0 && s.completed[n-1].CompletedAt > completedAt {
		completedAt = s.completed[n-1].CompletedAt
	}

	record := models.CompletedTask{
		ID:          task.ID,
		CompletedAt: completedAt,
		Color:       task.Color,
		JarPosition: s.drawJarPosition(),
	}

	s.pending = slices.Delete(s.pending, idx, idx+1)
	s.completed = append(s.completed, record)
	s.advanceStreak(now)

	s.saveTasks()
	s.saveCompleted()
	s.saveStreak()
	s.saveLastActivity()

	s.logger.Debug("task completed", zap.String("id", id), zap.Int("streak", s.streak))
	return record, true
}

func (s *Store) drawJarPosition() models.JarPosition {
	return models.JarPosition{
		X: s.rand.Float64()*80 + 10,
		Y: s.rand.Float64()*60 + 20,
		Z: s.rand.Float64()*20 + 10,
	}
}

// DeleteTask discards a pending task. It reports whether the task existed.
func (s *Store) DeleteTask(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.pending = slices.Delete(s.pending, idx, idx+1)
	s.saveTasks()
	return true
}

// ClearAllTasks discards every pending task
func (s *Store) ClearAllTasks() {
	s.pending = []models.Task{}
	s.saveTasks()
}

// ClearCompletedTasks empties the jar. The streak is kept.
func (s *Store) ClearCompletedTasks() {
	s.completed = []models.CompletedTask{}
	s.saveCompleted()
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.pending, func(t models.Task) bool {
		return t.ID == id
	})
}

// Task returns the pending task with id
func (s *Store) Task(id string) (models.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return s.pending[idx], true
}

// Pending returns a copy of the pending tasks, newest first
func (s *Store) Pending() []models.Task {
	return slices.Clone(s.pending)
}

// Completed returns a copy of the completed records, oldest first
func (s *Store) Completed() []models.CompletedTask {
	return slices.Clone(s.completed)
}

// Streak returns the current day streak
func (s *Store) Streak() int {
	return s.streak
}

// LastActivity returns the time of the last completion that advanced the streak
func (s *Store) LastActivity() (time.Time, bool) {
	return s.lastActivity, s.hasActivity
}

// JarCapacity returns the number of tokens that fill the jar
func (s *Store) JarCapacity() int {
	return s.capacity
}

package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits applied to a task draft before it becomes a task
const (
	MaxTextLength       = 80
	MaxCategoryLength   = 20
	MinEstimatedMinutes = 1
	MaxEstimatedMinutes = 60
)

// DefaultCategory is the group name used for tasks without a category
const DefaultCategory = "general"

// Color is one of the fixed sticky note colors
type Color string

const (
	ColorMint     Color = "mint"
	ColorLavender Color = "lavender"
	ColorPeach    Color = "peach"
	ColorSky      Color = "sky"
	ColorButter   Color = "butter"
	ColorCoral    Color = "coral"
	ColorSage     Color = "sage"
	ColorCream    Color = "cream"
)

// DefaultColor is used when a draft does not pick a color
const DefaultColor = ColorButter

// Palette lists every note color in display order
var Palette = []Color{
	ColorMint,
	ColorLavender,
	ColorPeach,
	ColorSky,
	ColorButter,
	ColorCoral,
	ColorSage,
	ColorCream,
}

var colorLabels = map[Color]string{
	ColorMint:     "Mint Green",
	ColorLavender: "Lavender",
	ColorPeach:    "Peach",
	ColorSky:      "Sky Blue",
	ColorButter:   "Butter Yellow",
	ColorCoral:    "Coral Pink",
	ColorSage:     "Sage Green",
	ColorCream:    "Cream",
}

// Valid reports whether c is part of the palette
func (c Color) Valid() bool {
	_, ok := colorLabels[c]
	return ok
}

// Label returns the human readable name of the color
func (c Color) Label() string {
	if label, ok := colorLabels[c]; ok {
		return label
	}
	return string(c)
}

// Next returns the palette color after c, wrapping around
func (c Color) Next() Color {
	for i, p := range Palette {
		if p == c {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return DefaultColor
}

// Task is a pending sticky note
type Task struct {
	ID               string `json:"id" yaml:"id"`
	Text             string `json:"text" yaml:"text"`
	Color            Color  `json:"color" yaml:"color"`
	CreatedAt        int64  `json:"createdAt" yaml:"createdAt"`
	EstimatedMinutes int    `json:"estimatedMinutes,omitempty" yaml:"estimatedMinutes,omitempty"`
	Category         string `json:"category,omitempty" yaml:"category,omitempty"`
	IsCompleted      bool   `json:"isCompleted" yaml:"isCompleted"`
}

// Created returns CreatedAt as a time
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// CategoryOrDefault returns the task category, or DefaultCategory when unset
func (t Task) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// JarPosition is the display coordinate of a token in the jar.
// X is in [10,90), Y in [20,80) and Z in [10,30).
type JarPosition struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// CompletedTask is the jar token left behind by a completed task
type CompletedTask struct {
	ID          string      `json:"id" yaml:"id"`
	CompletedAt int64       `json:"completedAt" yaml:"completedAt"`
	Color       Color       `json:"color" yaml:"color"`
	JarPosition JarPosition `json:"jarPosition" yaml:"jarPosition"`
}

// Completed returns CompletedAt as a time
func (c CompletedTask) Completed() time.Time {
	return time.UnixMilli(c.CompletedAt)
}

// Draft holds user input for a new task
type Draft struct {
	Text             string `json:"text"`
	Color            Color  `json:"color"`
	EstimatedMinutes int    `json:"estimatedMinutes,omitempty"`
	Category         string `json:"category,omitempty"`
}

// Normalize trims the draft and checks it against the task limits.
// An empty color becomes DefaultColor and a blank category is dropped.
func (d Draft) Normalize() (Draft, error) {
	d.Text = strings.TrimSpace(d.Text)
	if d.Text == "" {
		return d, ErrEmptyText
	}
	if utf8.RuneCountInString(d.Text) > MaxTextLength {
		return d, fmt.Errorf("%w: text longer than %d characters", ErrInvalidDraft, MaxTextLength)
	}

	if d.Color == "" {
		d.Color = DefaultColor
	}
	if !d.Color.Valid() {
		return d, fmt.Errorf("%w: unknown color %q", ErrInvalidDraft, d.Color)
	}

	if d.EstimatedMinutes != 0 && (d.EstimatedMinutes < MinEstimatedMinutes || d.EstimatedMinutes > MaxEstimatedMinutes) {
		return d, fmt.Errorf("%w: estimated minutes must be between %d and %d", ErrInvalidDraft, MinEstimatedMinutes, MaxEstimatedMinutes)
	}

	d.Category = strings.TrimSpace(d.Category)
	if utf8.RuneCountInString(d.Category) > MaxCategoryLength {
		return d, fmt.Errorf("%w: category longer than %d characters", ErrInvalidDraft, MaxCategoryLength)
	}

	return d, nil
}

// Preset is a quick task offered on the board
type Preset struct {
	Text             string
	Category         string
	EstimatedMinutes int
}

// Presets are the quick morning tasks
var Presets = []Preset{
	{Text: "Make coffee", Category: "morning", EstimatedMinutes: 3},
	{Text: "Check emails", Category: "work", EstimatedMinutes: 5},
	{Text: "10-min cleanup", Category: "home", EstimatedMinutes: 10},
	{Text: "Stretch & breathe", Category: "wellness", EstimatedMinutes: 5},
	{Text: "Plan the day", Category: "planning", EstimatedMinutes: 5},
}

// CategoryGroup is a set of pending tasks sharing a category
type CategoryGroup struct {
	Name  string `json:"name" yaml:"name"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Achievement is a milestone shown next to the jar
type Achievement struct {
	Name     string `json:"name" yaml:"name"`
	Unlocked bool   `json:"unlocked" yaml:"unlocked"`
}

// Stats is the derived progress summary
type Stats struct {
	Active       int           `json:"active" yaml:"active"`
	Completed    int           `json:"completed" yaml:"completed"`
	Streak       int           `json:"streak" yaml:"streak"`
	Today        int           `json:"today" yaml:"today"`
	Week         int           `json:"week" yaml:"week"`
	JarCapacity  int           `json:"jarCapacity" yaml:"jarCapacity"`
	JarFill      float64       `json:"jarFill" yaml:"jarFill"`
	JarFull      bool          `json:"jarFull" yaml:"jarFull"`
	Achievements []Achievement `json:"achievements" yaml:"achievements"`
}

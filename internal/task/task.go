package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a task is created with a title that is
// empty or all whitespace.
var ErrEmptyTitle = errors.New("task title is empty")

// Task is a single dated reminder. ID is assigned at creation and never
// changes; everything else may be edited in place.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Date        time.Time  `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// New builds a task with a fresh id. The title must contain at least one
// non-whitespace character; surrounding whitespace is kept as typed.
func New(title, notes string, date time.Time) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:        uuid.New().String(),
		Title:     title,
		Notes:     notes,
		Date:      date,
		CreatedAt: time.Now(),
	}, nil
}

// MarkCompleted sets the completion flag and stamps the completion time
// if one is not already recorded.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	if t.CompletedAt == nil {
		at := now
		t.CompletedAt = &at
	}
}

// MarkPending clears the completion flag and the recorded time.
func (t *Task) MarkPending() {
	t.Completed = false
	t.CompletedAt = nil
}

// CompletedText returns a short human label for a finished task, or ""
// while the task is still pending.
func (t Task) CompletedText() string {
	if !t.Completed || t.CompletedAt == nil {
		return ""
	}
	return "completed at " + t.CompletedAt.Format("3:04 PM")
}

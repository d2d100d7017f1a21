package task

import (
	"errors"
	"testing"
	"time"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	date := time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local)
	a, err := New("Buy milk", "", date)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := New("Buy milk", "", date)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("two creates produced the same id %q", a.ID)
	}
	if a.Completed {
		t.Fatalf("new task should not be completed")
	}
	if a.CompletedAt != nil {
		t.Fatalf("new task should have no completion time")
	}
}

func TestNewRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := New(title, "", time.Now())
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestCompletionStamping(t *testing.T) {
	tk, err := New("Water plants", "", time.Now())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	now := time.Date(2025, 5, 10, 15, 4, 0, 0, time.Local)
	tk.MarkCompleted(now)
	if !tk.Completed {
		t.Fatalf("expected completed")
	}
	if tk.CompletedAt == nil || !tk.CompletedAt.Equal(now) {
		t.Fatalf("expected completion time %v, got %v", now, tk.CompletedAt)
	}

	// A second mark must not move the original stamp.
	tk.MarkCompleted(now.Add(time.Hour))
	if !tk.CompletedAt.Equal(now) {
		t.Fatalf("completion time moved to %v", tk.CompletedAt)
	}

	tk.MarkPending()
	if tk.Completed || tk.CompletedAt != nil {
		t.Fatalf("expected cleared completion state, got %v %v", tk.Completed, tk.CompletedAt)
	}
}

func TestCompletedText(t *testing.T) {
	tk, err := New("Call dentist", "", time.Now())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := tk.CompletedText(); got != "" {
		t.Fatalf("pending task should have empty label, got %q", got)
	}
	tk.MarkCompleted(time.Date(2025, 5, 10, 15, 4, 0, 0, time.Local))
	if got := tk.CompletedText(); got != "completed at 3:04 PM" {
		t.Fatalf("unexpected label %q", got)
	}
}

package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"remind/internal/config"
	"remind/internal/planner"
	"remind/internal/schedule"
	"remind/internal/storage"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("store close failed: %v", err)
		}
	})

	cfg := config.Config{WindowDays: 7}
	cfg.Keys = config.Keymap{
		Quit: "q", Add: "a", Up: "k", Down: "j",
		PrevDay: "h", NextDay: "l", Toggle: " ", Delete: "d",
		Detail: "enter", Confirm: "enter", Cancel: "esc", SetName: "n",
	}

	engine := planner.NewEngine(store)
	window := schedule.Window(time.Now(), cfg.WindowDays)
	engine.SetSelectedDayByIndex(schedule.Lookback, window)

	return Model{
		store:  store,
		cfg:    cfg,
		plan:   planner.New(store, engine),
		engine: engine,
		window: window,
		dayIdx: schedule.Lookback,
		input:  textinput.New(),
	}
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func TestDayNavigationMovesSelection(t *testing.T) {
	m := setupModel(t)
	today, ok := m.engine.SelectedDay()
	if !ok {
		t.Fatalf("expected initial selection")
	}

	m = press(t, m, "l")
	next, _ := m.engine.SelectedDay()
	if !schedule.SameDay(next, today.AddDate(0, 0, 1)) {
		t.Fatalf("expected next day, got %v", next)
	}

	m = press(t, m, "h")
	back, _ := m.engine.SelectedDay()
	if !schedule.SameDay(back, today) {
		t.Fatalf("expected to return to %v, got %v", today, back)
	}

	// Walking past the window start stays put.
	for i := 0; i < len(m.window)+2; i++ {
		m = press(t, m, "h")
	}
	first, _ := m.engine.SelectedDay()
	if !first.Equal(m.window[0]) {
		t.Fatalf("expected clamp at window start, got %v", first)
	}
}

func TestAddFlowCreatesTaskOnSelectedDay(t *testing.T) {
	m := setupModel(t)
	m = press(t, m, "a")
	if m.add == nil {
		t.Fatalf("expected add editor")
	}

	m = typeText(t, m, "Buy milk")
	m = press(t, m, "enter") // to notes
	m = press(t, m, "enter") // to date (prefilled with selected day)
	m = press(t, m, "enter") // save

	if m.add != nil {
		t.Fatalf("expected add editor closed, status %q", m.status)
	}
	view := m.engine.TasksForSelectedDay()
	if len(view) != 1 || view[0].Title != "Buy milk" {
		t.Fatalf("expected created task in view, got %+v", view)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	m := setupModel(t)
	m = press(t, m, "a")
	m = press(t, m, "enter")
	m = press(t, m, "enter")
	m = press(t, m, "enter")

	if m.add == nil {
		t.Fatalf("expected editor to stay open on validation failure")
	}
	if !strings.Contains(m.status, "save failed") {
		t.Fatalf("expected validation status, got %q", m.status)
	}
	if got := m.store.RetrieveAll(); len(got) != 0 {
		t.Fatalf("blank title must not persist, got %d tasks", len(got))
	}
}

func TestToggleAndDeleteKeys(t *testing.T) {
	m := setupModel(t)
	day, _ := m.engine.SelectedDay()
	created, err := m.plan.Create("Water plants", "", day)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m = press(t, m, " ")
	view := m.engine.TasksForSelectedDay()
	if len(view) != 1 || !view[0].Completed {
		t.Fatalf("expected completed task after toggle, got %+v", view)
	}

	m = press(t, m, "d")
	if !m.confirmDel || m.pendingDel == nil || m.pendingDel.ID != created.ID {
		t.Fatalf("expected delete confirmation for %s", created.ID)
	}
	m = press(t, m, "y")
	if got := m.engine.TasksForSelectedDay(); len(got) != 0 {
		t.Fatalf("expected empty day after delete, got %d", len(got))
	}
}

func TestNameFlowStoresDisplayName(t *testing.T) {
	m := setupModel(t)
	m = press(t, m, "n")
	if m.mode != modeName {
		t.Fatalf("expected name mode")
	}
	m = typeText(t, m, "Sam")
	m = press(t, m, "enter")

	if m.name != "Sam" {
		t.Fatalf("expected name Sam, got %q", m.name)
	}
	stored, ok := m.store.GetSetting(planner.DisplayNameKey)
	if !ok || stored != "Sam" {
		t.Fatalf("expected stored name Sam, got (%q, %v)", stored, ok)
	}
	if !strings.Contains(m.View(), "Sam") {
		t.Fatalf("expected greeting to address Sam")
	}
}

func TestViewListsSelectedDayTasks(t *testing.T) {
	m := setupModel(t)
	day, _ := m.engine.SelectedDay()
	if _, err := m.plan.Create("Visible", "", day); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := m.plan.Create("Hidden", "", day.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	out := m.View()
	if !strings.Contains(out, "Visible") {
		t.Fatalf("expected selected-day task in view:\n%s", out)
	}
	if strings.Contains(out, "Hidden") {
		t.Fatalf("other-day task leaked into view:\n%s", out)
	}
}

func TestClampCursorAndWrapIndex(t *testing.T) {
	if got := clampCursor(5, 3); got != 2 {
		t.Fatalf("clampCursor(5,3) = %d", got)
	}
	if got := clampCursor(-1, 3); got != 0 {
		t.Fatalf("clampCursor(-1,3) = %d", got)
	}
	if got := clampCursor(0, 0); got != 0 {
		t.Fatalf("clampCursor(0,0) = %d", got)
	}
	if got := wrapIndex(3, 3); got != 0 {
		t.Fatalf("wrapIndex(3,3) = %d", got)
	}
	if got := wrapIndex(-1, 3); got != 2 {
		t.Fatalf("wrapIndex(-1,3) = %d", got)
	}
}

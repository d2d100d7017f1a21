package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remind/internal/config"
	"remind/internal/planner"
	"remind/internal/schedule"
	"remind/internal/storage"
	"remind/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeName
)

var (
	selectedDayStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	dayStyle         = lipgloss.NewStyle().Padding(0, 1)
	todayStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	doneStyle        = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	greetingStyle    = lipgloss.NewStyle().Bold(true)
)

type addState struct {
	title string
	notes string
	date  string
	index int
}

type Model struct {
	store      *storage.Store
	cfg        config.Config
	plan       *planner.Planner
	engine     *planner.Engine
	window     []time.Time
	dayIdx     int
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	name       string
	confirmDel bool
	pendingDel *task.Task
	add        *addState
}

func Run(store *storage.Store, cfg config.Config) error {
	engine := planner.NewEngine(store)
	plan := planner.New(store, engine)

	window := schedule.Window(time.Now(), cfg.WindowDays)
	engine.SetSelectedDayByIndex(schedule.Lookback, window)

	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	name, _ := store.GetSetting(planner.DisplayNameKey)

	m := Model{
		store:  store,
		cfg:    cfg,
		plan:   plan,
		engine: engine,
		window: window,
		dayIdx: schedule.Lookback,
		input:  ti,
		mode:   modeList,
		name:   name,
		status: "Press 'a' to add, space to toggle, 'd' to delete, h/l to change day.",
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.add != nil {
			return m.updateAddMode(msg.String(), msg)
		}
		if m.mode == modeName {
			return m.updateNameMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	tasks := m.engine.TasksForSelectedDay()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(tasks) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(tasks))
		}
	case m.cfg.Keys.PrevDay, "left":
		return m.selectDay(m.dayIdx - 1)
	case m.cfg.Keys.NextDay, "right":
		return m.selectDay(m.dayIdx + 1)
	case m.cfg.Keys.Add:
		return m.startAdd()
	case m.cfg.Keys.SetName:
		m.mode = modeName
		m.input.Placeholder = "Your name"
		m.input.SetValue(m.name)
		m.input.Focus()
		m.status = "Who should I greet? Enter to save, Esc to cancel."
		return m, nil
	case m.cfg.Keys.Toggle:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		updated, err := m.plan.ToggleCompletion(t.ID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.engine.TasksForSelectedDay()))
		if updated.Completed {
			m.status = fmt.Sprintf("Done: %s (%s)", updated.Title, updated.CompletedText())
		} else {
			m.status = fmt.Sprintf("Reopened: %s", updated.Title)
		}
	case m.cfg.Keys.Delete:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case m.cfg.Keys.Detail:
		if len(tasks) == 0 {
			m.status = "No tasks for this day"
			return m, nil
		}
		t := tasks[m.cursor]
		info := fmt.Sprintf("%s • %s", t.Title, t.Date.Format("2006-01-02"))
		if strings.TrimSpace(t.Notes) != "" {
			info += " • " + t.Notes
		}
		if txt := t.CompletedText(); txt != "" {
			info += " • " + txt
		}
		m.status = info
	}
	return m, nil
}

func (m Model) selectDay(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.window) {
		return m, nil
	}
	m.dayIdx = idx
	m.engine.SetSelectedDayByIndex(idx, m.window)
	m.cursor = clampCursor(m.cursor, len(m.engine.TasksForSelectedDay()))
	m.status = "Showing " + m.window[idx].Format("Mon Jan 2")
	return m, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	day, ok := m.engine.SelectedDay()
	if !ok {
		day = schedule.StartOfDay(time.Now())
	}
	m.add = &addState{date: day.Format("2006-01-02")}
	m.mode = modeAdd
	m.input.SetValue(m.add.currentValue())
	m.input.Placeholder = m.add.currentLabel()
	m.input.Focus()
	m.status = "New task: enter to advance, esc to cancel, tab to move."
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.add = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "shift+tab":
		if m.add == nil {
			return m, nil
		}
		m.add.setCurrentValue(m.input.Value())
		step := 1
		if key == "shift+tab" {
			step = -1
		}
		m.add.index = wrapIndex(m.add.index+step, len(addFields()))
		m.input.SetValue(m.add.currentValue())
		m.input.Placeholder = m.add.currentLabel()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.add == nil {
			return m, nil
		}
		m.add.setCurrentValue(m.input.Value())
		if m.add.index < len(addFields())-1 {
			m.add.index++
			m.input.SetValue(m.add.currentValue())
			m.input.Placeholder = m.add.currentLabel()
			return m, nil
		}
		return m.saveNewTask()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveNewTask() (tea.Model, tea.Cmd) {
	if m.add == nil {
		return m, nil
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(m.add.date), time.Local)
	if err != nil {
		m.status = fmt.Sprintf("date invalid: %v", err)
		return m, nil
	}
	created, err := m.plan.Create(m.add.title, m.add.notes, date)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.add = nil
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")

	// Jump to the day the task landed on if it is inside the window.
	for i, day := range m.window {
		if schedule.SameDay(day, created.Date) {
			m.dayIdx = i
			m.engine.SetSelectedDayByIndex(i, m.window)
			break
		}
	}
	tasks := m.engine.TasksForSelectedDay()
	m.cursor = clampCursor(len(tasks)-1, len(tasks))
	m.status = fmt.Sprintf("Added %q for %s", created.Title, created.Date.Format("Jan 2"))
	return m, nil
}

func (m Model) updateNameMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		name := strings.TrimSpace(m.input.Value())
		if err := m.store.SetSetting(planner.DisplayNameKey, name); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.name = name
		m.mode = modeList
		m.input.Blur()
		m.input.SetValue("")
		m.status = "Name saved"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.plan.Delete(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.cursor = clampCursor(m.cursor, len(m.engine.TasksForSelectedDay()))
			m.status = "Deleted task"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(greetingStyle.Render(planner.Greeting(time.Now(), m.name)))
	b.WriteString("\n\n")
	b.WriteString(m.renderDayStrip())
	b.WriteString("\n\n")

	tasks := m.engine.TasksForSelectedDay()
	if len(tasks) == 0 {
		b.WriteString("Nothing scheduled. Press 'a' to add a task.")
	} else {
		b.WriteString(m.renderTaskList(tasks))
	}

	b.WriteString("\n---\n")

	if m.add != nil {
		b.WriteString(m.renderAddBox())
		b.WriteString("\n")
		b.WriteString("Field: " + m.add.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	} else if m.mode == modeName {
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

// renderDayStrip shows a band of days around the selection.
func (m Model) renderDayStrip() string {
	const span = 3
	lo := m.dayIdx - span
	if lo < 0 {
		lo = 0
	}
	hi := m.dayIdx + span + 1
	if hi > len(m.window) {
		hi = len(m.window)
	}

	parts := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		day := m.window[i]
		label := day.Format("Mon 2")
		switch {
		case i == m.dayIdx:
			label = selectedDayStyle.Render(label)
		case schedule.SameDay(day, time.Now()):
			label = todayStyle.Render(label)
		default:
			label = dayStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTaskList(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		title := t.Title
		if t.Completed {
			checkbox = "[x]"
			title = doneStyle.Render(title)
		}

		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox, title))
		if txt := t.CompletedText(); txt != "" {
			b.WriteString("  " + doneStyle.Render(txt))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderAddBox() string {
	if m.add == nil {
		return ""
	}
	fields := addFields()
	values := []string{m.add.title, m.add.notes, m.add.date}
	var b strings.Builder
	for i, name := range fields {
		prefix := " "
		if i == m.add.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-22s : %s\n", prefix, name, val))
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s day • %s add • %s detail • %s toggle • %s delete • %s name • %s quit",
		k.Up, k.Down, k.PrevDay, k.NextDay, k.Add, k.Detail, k.Toggle, k.Delete, k.SetName, k.Quit)
}

func addFields() []string {
	return []string{"title", "notes", "date (YYYY-MM-DD)"}
}

func (a addState) currentLabel() string {
	return addFields()[a.index]
}

func (a addState) currentValue() string {
	switch a.index {
	case 0:
		return a.title
	case 1:
		return a.notes
	case 2:
		return a.date
	default:
		return ""
	}
}

func (a *addState) setCurrentValue(v string) {
	switch a.index {
	case 0:
		a.title = v
	case 1:
		a.notes = v
	case 2:
		a.date = v
	}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

// Package planner owns the in-memory view over the task store: the
// selected calendar day, the derived task list for that day, and the
// mutations that write through to storage.
package planner

import (
	"time"

	"remind/internal/schedule"
	"remind/internal/storage"
	"remind/internal/task"
)

// Engine filters the stored tasks down to those scheduled for the
// selected day. The derived slice is rebuilt on every Reload; it is a
// read-only view, all writes go through the store.
type Engine struct {
	store *storage.Store

	selectedDay *time.Time
	dayTasks    []task.Task

	nextSubID   int
	subscribers map[int]func()
}

func NewEngine(store *storage.Store) *Engine {
	return &Engine{
		store:       store,
		subscribers: map[int]func(){},
	}
}

// SelectedDay returns the day currently driving the filter, or false
// when no day has been selected yet.
func (e *Engine) SelectedDay() (time.Time, bool) {
	if e.selectedDay == nil {
		return time.Time{}, false
	}
	return *e.selectedDay, true
}

// TasksForSelectedDay returns the derived view as of the last Reload,
// in the store's insertion order.
func (e *Engine) TasksForSelectedDay() []task.Task {
	return e.dayTasks
}

// SetSelectedDayByIndex selects window[i] and re-derives the view. An
// out-of-bounds index leaves the selection unchanged.
func (e *Engine) SetSelectedDayByIndex(i int, window []time.Time) {
	if i < 0 || i >= len(window) {
		return
	}
	day := window[i]
	e.selectedDay = &day
	e.Reload()
}

// Reload refetches the full collection and rebuilds the selected-day
// view, then tells subscribers the state changed.
func (e *Engine) Reload() {
	all := e.store.RetrieveAll()
	e.dayTasks = e.dayTasks[:0]
	if e.selectedDay != nil {
		for _, t := range all {
			if schedule.SameDay(t.Date, *e.selectedDay) {
				e.dayTasks = append(e.dayTasks, t)
			}
		}
	}
	for _, notify := range e.subscribers {
		notify()
	}
}

// Subscribe registers fn to run after every completed Reload and
// returns a token for Unsubscribe. The callback carries no payload;
// consumers re-read the views themselves.
func (e *Engine) Subscribe(fn func()) int {
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	return id
}

func (e *Engine) Unsubscribe(id int) {
	delete(e.subscribers, id)
}

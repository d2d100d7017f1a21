package planner

import (
	"time"

	"remind/internal/storage"
	"remind/internal/task"
)

// Planner is the single mutation entry point: every change writes
// through the store and then reloads the engine so no view goes stale.
type Planner struct {
	store  *storage.Store
	engine *Engine
	now    func() time.Time
}

func New(store *storage.Store, engine *Engine) *Planner {
	return &Planner{store: store, engine: engine, now: time.Now}
}

func (p *Planner) Engine() *Engine { return p.engine }

// Create validates the title, assigns a fresh id, persists the task,
// and returns it. Nothing is persisted when validation fails.
func (p *Planner) Create(title, notes string, date time.Time) (task.Task, error) {
	t, err := task.New(title, notes, date)
	if err != nil {
		return task.Task{}, wrapTaskErr("create", "", err)
	}
	if err := p.store.Insert(t); err != nil {
		return task.Task{}, wrapTaskErr("create", t.ID, err)
	}
	p.engine.Reload()
	return t, nil
}

// Update writes the edited record through the store. A missing id is a
// silent no-op, tolerating updates racing a delete.
func (p *Planner) Update(t task.Task) error {
	if err := p.store.Update(t); err != nil {
		return wrapTaskErr("update", t.ID, err)
	}
	p.engine.Reload()
	return nil
}

// Delete removes the task if present. Deleting an unknown id is not an
// error.
func (p *Planner) Delete(id string) error {
	if err := p.store.DeleteByID(id); err != nil {
		return wrapTaskErr("delete", id, err)
	}
	p.engine.Reload()
	return nil
}

// ToggleCompletion flips the completion state of the identified task,
// stamping the completion time on the way up and clearing it on the
// way down, and returns the updated record.
func (p *Planner) ToggleCompletion(id string) (task.Task, error) {
	var found *task.Task
	for _, t := range p.store.RetrieveAll() {
		if t.ID == id {
			found = &t
			break
		}
	}
	if found == nil {
		return task.Task{}, wrapTaskErr("toggle", id, ErrTaskNotFound)
	}

	if found.Completed {
		found.MarkPending()
	} else {
		found.MarkCompleted(p.now())
	}
	if err := p.store.Update(*found); err != nil {
		return task.Task{}, wrapTaskErr("toggle", id, err)
	}
	p.engine.Reload()
	return *found, nil
}

// Package app holds the modal task list state machine: browsing the list,
// creating a task, or editing the selected one.
package app

import (
	"io"
	"unicode"

	"github.com/charmbracelet/log"

	"taskmaster/internal/storage"
	"taskmaster/internal/task"
	"taskmaster/internal/tasklist"
)

type Mode int

const (
	Browsing Mode = iota
	Editing
	Creating
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Creating:
		return "creating"
	default:
		return "browsing"
	}
}

// App is read by the renderer after every mutation. The mode is derived from
// the draft, so a draft can never exist while browsing.
type App struct {
	List         *tasklist.List
	Field        Field
	BlinkVisible bool

	draft  *Draft
	exit   bool
	store  storage.Gateway
	logger *log.Logger
}

func New(tasks []task.Task, store storage.Gateway, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &App{
		List:         tasklist.New(tasks),
		BlinkVisible: true,
		store:        store,
		logger:       logger,
	}
	a.List.SelectFirst()
	return a
}

func (a *App) Mode() Mode {
	switch {
	case a.draft == nil:
		return Browsing
	case a.draft.creating:
		return Creating
	default:
		return Editing
	}
}

// Draft returns a copy of the in-flight draft, if any.
func (a *App) Draft() (Draft, bool) {
	if a.draft == nil {
		return Draft{}, false
	}
	return *a.draft, true
}

func (a *App) ExitRequested() bool {
	return a.exit
}

func (a *App) RequestExit() {
	a.exit = true
}

func (a *App) CreateNewTask() {
	if a.Mode() != Browsing {
		return
	}
	a.draft = newCreateDraft()
	a.Field = FieldName
}

func (a *App) EnterEditingMode() {
	if a.Mode() != Browsing {
		return
	}
	t, ok := a.List.SelectedTask()
	if !ok {
		return
	}
	a.draft = newEditDraft(t)
	a.Field = FieldName
}

func (a *App) SwitchActiveField() {
	a.Field = a.Field.Next()
}

// FieldInput appends r to the active field. Control characters such as a
// pasted newline or tab are dropped so every field stays on one line.
func (a *App) FieldInput(r rune) {
	if a.draft == nil || unicode.IsControl(r) {
		return
	}
	a.draft.input(a.Field, r)
}

func (a *App) BackspaceFieldInput() {
	if a.draft == nil {
		return
	}
	a.draft.backspace(a.Field)
}

// SaveTask commits an edit over the selected task.
func (a *App) SaveTask() {
	if a.Mode() != Editing {
		return
	}
	if _, ok := a.List.Selected(); ok {
		a.List.Replace(a.draft.commit(a.logger))
	}
	a.draft = nil
}

// SaveNewTask appends the created task and selects it.
func (a *App) SaveNewTask() {
	if a.Mode() != Creating {
		return
	}
	t := a.draft.commit(a.logger)
	a.List.Push(t)
	a.List.SelectLast()
	a.draft = nil
	a.logger.Debug("created task", "id", t.ID, "title", t.Title)
}

func (a *App) CancelEditing() {
	a.draft = nil
}

func (a *App) ToggleStatus() {
	a.List.Update(func(t *task.Task) {
		t.Status = t.Status.Toggle()
	})
}

func (a *App) ToggleCursorBlink() {
	a.BlinkVisible = !a.BlinkVisible
}

func (a *App) SelectNone()     { a.List.SelectNone() }
func (a *App) SelectNext()     { a.List.SelectNext() }
func (a *App) SelectPrevious() { a.List.SelectPrevious() }
func (a *App) SelectFirst()    { a.List.SelectFirst() }
func (a *App) SelectLast()     { a.List.SelectLast() }

// DeleteSelected removes the selected task and persists right away. A failed
// save is logged and the app keeps running.
func (a *App) DeleteSelected() {
	removed, ok := a.List.RemoveSelected()
	if !ok {
		return
	}
	if err := a.Save(); err != nil {
		a.logger.Error("failed to save after delete", "id", removed.ID, "err", err)
		return
	}
	a.logger.Info("deleted task", "id", removed.ID, "title", removed.Title)
}

func (a *App) Save() error {
	if a.store == nil {
		return nil
	}
	return a.store.Save(a.List.Items())
}

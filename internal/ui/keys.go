package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskmaster/internal/app"
	"taskmaster/internal/config"
)

type keyMap struct {
	New       key.Binding
	Edit      key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Toggle    key.Binding
	Unselect  key.Binding
	Delete    key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextField key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		New:       binding(k.New, "new task"),
		Edit:      binding(k.Edit, "edit"),
		Quit:      binding(k.Quit, "quit"),
		Up:        binding(k.Up, "up"),
		Down:      binding(k.Down, "down"),
		Top:       binding(k.Top, "top"),
		Bottom:    binding(k.Bottom, "bottom"),
		Toggle:    binding(k.Toggle, "toggle status"),
		Unselect:  binding(k.Unselect, "unselect"),
		Delete:    binding(k.Delete, "delete"),
		Save:      binding(k.Save, "save"),
		Cancel:    binding(k.Cancel, "cancel"),
		NextField: binding(k.NextField, "next field"),
	}
}

func binding(keys []string, desc string) key.Binding {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, keyLabel(k))
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(labels, "/"), desc))
}

func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}

// browseHelp and editHelp feed bubbles/help with the bindings of each mode.
type browseHelp struct{ keyMap }

func (h browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Up, h.Down, h.Toggle, h.New, h.Edit, h.Delete, h.Quit}
}

func (h browseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Up, h.Down, h.Top, h.Bottom, h.Unselect},
		{h.Toggle, h.New, h.Edit, h.Delete, h.Quit},
	}
}

type editHelp struct{ keyMap }

func (h editHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.NextField, h.Save, h.Cancel}
}

func (h editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// dispatch applies the state machine operation bound to msg in the current
// mode. Unbound keys are ignored.
func dispatch(a *app.App, km keyMap, msg tea.KeyMsg) {
	switch a.Mode() {
	case app.Browsing:
		dispatchBrowsing(a, km, msg)
	case app.Editing, app.Creating:
		dispatchEditing(a, km, msg)
	}
}

func dispatchBrowsing(a *app.App, km keyMap, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, km.New):
		a.CreateNewTask()
	case key.Matches(msg, km.Edit):
		a.EnterEditingMode()
	case key.Matches(msg, km.Quit):
		a.RequestExit()
	case key.Matches(msg, km.Up):
		a.SelectPrevious()
	case key.Matches(msg, km.Down):
		a.SelectNext()
	case key.Matches(msg, km.Top):
		a.SelectFirst()
	case key.Matches(msg, km.Bottom):
		a.SelectLast()
	case key.Matches(msg, km.Toggle):
		a.ToggleStatus()
	case key.Matches(msg, km.Unselect):
		a.SelectNone()
	case key.Matches(msg, km.Delete):
		a.DeleteSelected()
	}
}

func dispatchEditing(a *app.App, km keyMap, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, km.Cancel):
		a.CancelEditing()
	case key.Matches(msg, km.Save):
		if a.Mode() == app.Creating {
			a.SaveNewTask()
		} else {
			a.SaveTask()
		}
	case key.Matches(msg, km.NextField):
		a.SwitchActiveField()
	case msg.Type == tea.KeyBackspace:
		a.BackspaceFieldInput()
	case msg.Type == tea.KeySpace:
		a.FieldInput(' ')
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			a.FieldInput(r)
		}
	}
}

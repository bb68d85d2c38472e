package app

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"taskmaster/internal/task"
)

type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldDueDate
	FieldTags
)

var fieldNames = [...]string{"Task", "Description", "Due Date", "Tags"}

func (f Field) String() string {
	if f < FieldName || f > FieldTags {
		return "Unknown"
	}
	return fieldNames[f]
}

// Next cycles Name -> Description -> DueDate -> Tags -> Name.
func (f Field) Next() Field {
	return (f + 1) % (FieldTags + 1)
}

// Draft is the uncommitted copy of a task being created or edited.
// HasDue distinguishes "no due date" from an empty due date buffer.
type Draft struct {
	Title       string
	Description string
	DueText     string
	HasDue      bool
	Tags        string

	creating bool
	base     task.Task
}

func newCreateDraft() *Draft {
	return &Draft{
		HasDue:   true,
		creating: true,
		base:     task.New(task.Todo, "", ""),
	}
}

func newEditDraft(t task.Task) *Draft {
	d := &Draft{
		Title:       t.Title,
		Description: t.Description,
		Tags:        task.JoinTags(t.Tags),
		base:        t.Clone(),
	}
	if t.Due != nil {
		d.DueText = t.FormatDue()
		d.HasDue = true
	}
	return d
}

func (d Draft) Creating() bool {
	return d.creating
}

func (d Draft) Status() task.Status {
	return d.base.Status
}

func (d *Draft) input(f Field, r rune) {
	switch f {
	case FieldName:
		d.Title += string(r)
	case FieldDescription:
		d.Description += string(r)
	case FieldDueDate:
		d.DueText += string(r)
		d.HasDue = true
	case FieldTags:
		d.Tags += string(r)
	}
}

func (d *Draft) backspace(f Field) {
	switch f {
	case FieldName:
		d.Title = dropLastRune(d.Title)
	case FieldDescription:
		d.Description = dropLastRune(d.Description)
	case FieldDueDate:
		if d.HasDue {
			d.DueText = dropLastRune(d.DueText)
		}
	case FieldTags:
		d.Tags = dropLastRune(d.Tags)
	}
}

// commit builds the task the draft describes. A due date that does not parse
// is dropped rather than rejected.
func (d *Draft) commit(logger *log.Logger) task.Task {
	t := d.base.Clone()
	t.Title = d.Title
	t.Description = d.Description
	t.Due = nil
	if d.HasDue && d.DueText != "" {
		if err := t.SetDueDate(d.DueText); err != nil {
			logger.Debug("dropping unparseable due date", "text", d.DueText, "err", err)
		}
	}
	t.Tags = task.SplitTags(d.Tags)
	return t
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

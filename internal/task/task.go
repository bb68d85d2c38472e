package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the only accepted due date format.
const DateLayout = "2006-01-02"

type Status int

const (
	Todo Status = iota
	Completed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	default:
		return "todo"
	}
}

func (s Status) Toggle() Status {
	if s == Completed {
		return Todo
	}
	return Completed
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "todo":
		*s = Todo
	case "completed":
		*s = Completed
	default:
		return fmt.Errorf("unknown status %q", string(b))
	}
	return nil
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Due         *time.Time
	Tags        []string
}

func New(status Status, title, description string) Task {
	return Task{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Status:      status,
	}
}

func NewID() string {
	return uuid.NewString()
}

// SetDueDate parses v as YYYY-MM-DD. On failure the current due date is kept.
func (t *Task) SetDueDate(v string) error {
	d, err := ParseDate(v)
	if err != nil {
		return err
	}
	t.Due = &d
	return nil
}

// AddTag appends tag unless an identical tag is already present.
func (t *Task) AddTag(tag string) {
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
}

func (t Task) Clone() Task {
	c := t
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return c
}

func (t Task) Done() bool {
	return t.Status == Completed
}

// FormatDue returns the due date as YYYY-MM-DD, or "" when there is none.
func (t Task) FormatDue() string {
	if t.Due == nil {
		return ""
	}
	return t.Due.Format(DateLayout)
}

func ParseDate(v string) (time.Time, error) {
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due date %q: %w", v, err)
	}
	return d, nil
}

// SplitTags splits comma separated tag text into trimmed, non-empty, unique tags.
func SplitTags(text string) []string {
	var t Task
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t.AddTag(part)
	}
	return t.Tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

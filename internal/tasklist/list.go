package tasklist

import "taskmaster/internal/task"

// List is the ordered task collection plus an optional highlighted index.
// The cursor is either unset or within [0, len(items)).
type List struct {
	items    []task.Task
	cursor   int
	selected bool
}

func New(items []task.Task) *List {
	return &List{items: items}
}

func (l *List) Items() []task.Task {
	return l.items
}

func (l *List) Len() int {
	return len(l.items)
}

func (l *List) At(i int) task.Task {
	return l.items[i]
}

func (l *List) Selected() (int, bool) {
	return l.cursor, l.selected
}

func (l *List) SelectedTask() (task.Task, bool) {
	if !l.selected {
		return task.Task{}, false
	}
	return l.items[l.cursor], true
}

func (l *List) Select(i int) {
	if len(l.items) == 0 {
		l.SelectNone()
		return
	}
	l.cursor = clampCursor(i, len(l.items))
	l.selected = true
}

func (l *List) SelectNone() {
	l.cursor = 0
	l.selected = false
}

func (l *List) SelectNext() {
	if len(l.items) == 0 {
		return
	}
	if !l.selected {
		l.Select(0)
		return
	}
	l.Select(l.cursor + 1)
}

func (l *List) SelectPrevious() {
	if len(l.items) == 0 {
		return
	}
	if !l.selected {
		l.Select(len(l.items) - 1)
		return
	}
	l.Select(l.cursor - 1)
}

func (l *List) SelectFirst() {
	if len(l.items) == 0 {
		return
	}
	l.Select(0)
}

func (l *List) SelectLast() {
	if len(l.items) == 0 {
		return
	}
	l.Select(len(l.items) - 1)
}

// RemoveSelected drops the highlighted task and moves the cursor back to the
// first item, or clears it when the list is now empty.
func (l *List) RemoveSelected() (task.Task, bool) {
	if !l.selected {
		return task.Task{}, false
	}
	removed := l.items[l.cursor]
	l.items = append(l.items[:l.cursor], l.items[l.cursor+1:]...)
	l.SelectNone()
	l.SelectFirst()
	return removed, true
}

// Replace overwrites the highlighted task.
func (l *List) Replace(t task.Task) bool {
	if !l.selected {
		return false
	}
	l.items[l.cursor] = t
	return true
}

func (l *List) Update(fn func(*task.Task)) bool {
	if !l.selected {
		return false
	}
	fn(&l.items[l.cursor])
	return true
}

func (l *List) Push(t task.Task) {
	l.items = append(l.items, t)
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

package tasklist

import (
	"testing"

	"taskmaster/internal/task"
)

func threeTasks() []task.Task {
	return []task.Task{
		task.New(task.Todo, "Test Task 1", "Some info about Test Task 1"),
		task.New(task.Todo, "Test Task 2", "Some info about Test Task 2"),
		task.New(task.Completed, "Test Task 3", "Some info about Test Task 3"),
	}
}

func assertCursor(t *testing.T, l *List, want int, wantOK bool) {
	t.Helper()
	got, ok := l.Selected()
	if ok != wantOK || (ok && got != want) {
		t.Fatalf("expected cursor (%d, %v), got (%d, %v)", want, wantOK, got, ok)
	}
}

func TestNavigationClamps(t *testing.T) {
	l := New(threeTasks())
	l.SelectFirst()

	l.SelectPrevious()
	assertCursor(t, l, 0, true)

	l.SelectNext()
	assertCursor(t, l, 1, true)
	l.SelectNext()
	assertCursor(t, l, 2, true)
	l.SelectNext()
	assertCursor(t, l, 2, true)

	l.SelectFirst()
	assertCursor(t, l, 0, true)
	l.SelectLast()
	assertCursor(t, l, 2, true)
}

func TestNavigationFromNoSelection(t *testing.T) {
	l := New(threeTasks())
	assertCursor(t, l, 0, false)

	l.SelectNext()
	assertCursor(t, l, 0, true)

	l.SelectNone()
	l.SelectPrevious()
	assertCursor(t, l, 2, true)
}

func TestNavigationOnEmptyListIsNoop(t *testing.T) {
	l := New(nil)
	l.SelectNext()
	l.SelectPrevious()
	l.SelectFirst()
	l.SelectLast()
	assertCursor(t, l, 0, false)
	if _, ok := l.RemoveSelected(); ok {
		t.Fatalf("expected nothing removed")
	}
}

func TestRemoveSelected(t *testing.T) {
	t.Run("last remaining item", func(t *testing.T) {
		l := New([]task.Task{task.New(task.Todo, "only", "")})
		l.SelectFirst()
		removed, ok := l.RemoveSelected()
		if !ok || removed.Title != "only" {
			t.Fatalf("expected to remove 'only', got %+v %v", removed, ok)
		}
		if l.Len() != 0 {
			t.Fatalf("expected empty list, got %d", l.Len())
		}
		assertCursor(t, l, 0, false)
	})
	t.Run("longer list resets to first", func(t *testing.T) {
		l := New(threeTasks())
		l.SelectLast()
		removed, ok := l.RemoveSelected()
		if !ok || removed.Title != "Test Task 3" {
			t.Fatalf("unexpected removal %+v %v", removed, ok)
		}
		if l.Len() != 2 {
			t.Fatalf("expected 2 items, got %d", l.Len())
		}
		assertCursor(t, l, 0, true)
	})
	t.Run("no selection", func(t *testing.T) {
		l := New(threeTasks())
		if _, ok := l.RemoveSelected(); ok {
			t.Fatalf("expected no removal without a selection")
		}
		if l.Len() != 3 {
			t.Fatalf("list changed")
		}
	})
}

func TestPushThenSelectLast(t *testing.T) {
	l := New(threeTasks())
	l.SelectFirst()
	l.Push(task.New(task.Todo, "Buy milk", ""))
	l.SelectLast()
	assertCursor(t, l, 3, true)
	if got, _ := l.SelectedTask(); got.Title != "Buy milk" {
		t.Fatalf("expected new task selected, got %q", got.Title)
	}
}

func TestReplaceAndUpdateRequireSelection(t *testing.T) {
	l := New(threeTasks())
	if l.Replace(task.New(task.Todo, "x", "")) {
		t.Fatalf("replace without selection should fail")
	}
	if l.Update(func(*task.Task) {}) {
		t.Fatalf("update without selection should fail")
	}
	l.Select(1)
	l.Update(func(tk *task.Task) { tk.Status = tk.Status.Toggle() })
	if !l.At(1).Done() {
		t.Fatalf("expected item 1 toggled")
	}
}

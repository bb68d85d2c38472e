package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"taskmaster/internal/app"
	"taskmaster/internal/task"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	borderSize    = 2
)

var (
	textColor      = lipgloss.Color("#DCDCDC")
	completedColor = lipgloss.Color("#90EE90")
	rowBg          = lipgloss.Color("#2D2D2D")
	altRowBg       = lipgloss.Color("#323232")

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Background(lipgloss.Color("#222222")).
			Bold(true).
			Padding(0, 1)
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F0F0F0")).
			Foreground(textColor)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#506478")).
			Bold(true).
			Italic(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(textColor).Padding(0, 1)
)

func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	footer := m.renderFooter(width)
	bodyHeight := max(height-lipgloss.Height(footer), borderSize+2)
	leftWidth := max(width/4, borderSize+8)
	rightWidth := max(width-leftWidth, borderSize+8)

	var right string
	if m.app.Mode() == app.Browsing {
		right = m.renderDetails(rightWidth, bodyHeight)
	} else {
		right = m.renderEditor(rightWidth, bodyHeight)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(leftWidth, bodyHeight), right)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func pane(title, content string, width, height int) string {
	inner := width - borderSize
	header := lipgloss.PlaceHorizontal(inner, lipgloss.Center, headerStyle.Render(title))
	return paneStyle.
		Width(inner).
		Height(height - borderSize).
		MaxHeight(height).
		Render(header + "\n" + content)
}

func (m Model) renderList(width, height int) string {
	inner := width - borderSize
	visible := max(height-borderSize-1, 1)
	list := m.app.List
	if list.Len() == 0 {
		return pane("TODO List", "No tasks yet.", width, height)
	}

	cursor, selected := list.Selected()
	start := 0
	if selected && cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, list.Len())

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := list.At(i)
		prefix := " "
		if selected && i == cursor {
			prefix = ">"
		}
		line := ansi.Truncate(fmt.Sprintf("%s %s %s", prefix, statusSymbol(t), t.Title), inner, "…")

		style := lipgloss.NewStyle().Width(inner).Foreground(textColor).Background(rowBg)
		if i%2 == 1 {
			style = style.Background(altRowBg)
		}
		if t.Done() {
			style = style.Foreground(completedColor)
		}
		if selected && i == cursor {
			style = selectedStyle.Width(inner)
		}
		rows = append(rows, style.Render(line))
	}
	return pane("TODO List", strings.Join(rows, "\n"), width, height)
}

func statusSymbol(t task.Task) string {
	if t.Done() {
		return "✓"
	}
	return "☐"
}

func (m Model) renderDetails(width, height int) string {
	t, ok := m.app.List.SelectedTask()
	if !ok {
		return pane("Task Details", "No task selected...", width, height)
	}

	var b strings.Builder
	if t.Done() {
		b.WriteString(labelStyle.Render("✓ DONE: ") + t.Title)
	} else {
		b.WriteString(labelStyle.Render("☐ TODO: ") + t.Title)
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Description:"))
	b.WriteString("\n")
	b.WriteString(t.Description)
	b.WriteString("\n\n")
	if t.Due != nil {
		b.WriteString("Due: " + t.FormatDue())
	} else {
		b.WriteString("No due date")
	}
	b.WriteString("\n")
	if len(t.Tags) > 0 {
		b.WriteString("Tags: " + task.JoinTags(t.Tags))
	} else {
		b.WriteString("No tags")
	}
	return pane("Task Details", b.String(), width, height)
}

func (m Model) renderEditor(width, height int) string {
	d, ok := m.app.Draft()
	if !ok {
		return pane("Task Details", "", width, height)
	}
	title := "Edit Task"
	if d.Creating() {
		title = "New Task"
	}

	due := d.DueText
	if !d.HasDue {
		due = "No due date"
	}
	fields := []struct {
		field app.Field
		value string
	}{
		{app.FieldName, d.Title},
		{app.FieldDescription, d.Description},
		{app.FieldDueDate, due},
		{app.FieldTags, d.Tags},
	}

	lines := make([]string, 0, len(fields)+2)
	for _, f := range fields {
		line := labelStyle.Render(f.field.String()+": ") + f.value
		if f.field == m.app.Field {
			line += m.cursor()
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", "Due date as YYYY-MM-DD, tags separated by commas.")
	return pane(title, strings.Join(lines, "\n"), width, height)
}

func (m Model) cursor() string {
	if m.app.BlinkVisible {
		return cursorStyle.Render("|")
	}
	return " "
}

func (m Model) renderFooter(width int) string {
	var km help.KeyMap
	if m.app.Mode() == app.Browsing {
		km = browseHelp{m.keys}
	} else {
		km = editHelp{m.keys}
	}
	h := m.help
	h.Width = width - footerStyle.GetHorizontalFrameSize()
	return footerStyle.Width(width).Render(fmt.Sprintf("[%s] %s", m.app.Mode(), h.View(km)))
}

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"taskmaster/internal/task"
)

func addList(topLevel *cobra.Command, opts *Options) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the saved tasks without starting the UI.",
		Example: `
taskmaster list
taskmaster list --backend sqlite
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()
			printTasks(cmd.OutOrStdout(), s.tasks)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func printTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks yet.")
		return
	}

	bold := color.New(color.Bold)
	done := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint(" "), bold.Sprint("Task"), bold.Sprint("Due"), bold.Sprint("Tags"))
	for _, t := range tasks {
		glyph, title := "☐", t.Title
		if t.Done() {
			glyph, title = done.Sprint("✓"), done.Sprint(t.Title)
		}
		due := faint.Sprint("-")
		if t.Due != nil {
			due = t.FormatDue()
		}
		tbl.AddRow(glyph, title, due, task.JoinTags(t.Tags))
	}

	_, _ = fmt.Fprintln(w, tbl)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tgienger/stickyjar/internal/models"
	"github.com/tgienger/stickyjar/internal/store"
)

func newAddCommand(opts *globalOptions) *cobra.Command {
	var color string
	var minutes int
	var category string

	cmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Add a sticky note",
		Example: `  stickyjar add "Water the plants"
  stickyjar add "Inbox zero" --color sky --minutes 15 --category work`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			task, err := sess.store.CreateTask(models.Draft{
				Text:             strings.Join(args, " "),
				Color:            models.Color(color),
				EstimatedMinutes: minutes,
				Category:         category,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", task.Text, task.ID)
			return err
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", string(models.DefaultColor), "note color: "+paletteNames())
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "estimated minutes (1-60)")
	cmd.Flags().StringVar(&category, "category", "", "category used to group notes")

	return cmd
}

func newPresetCommand(opts *globalOptions) *cobra.Command {
	var list strings.Builder
	for i, p := range models.Presets {
		fmt.Fprintf(&list, "  %d  %s (%s, %dm)\n", i+1, p.Text, p.Category, p.EstimatedMinutes)
	}

	return &cobra.Command{
		Use:   "preset N",
		Short: "Add one of the quick tasks",
		Long:  "Add one of the quick tasks with a random color:\n\n" + list.String(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > len(models.Presets) {
				return fmt.Errorf("preset must be a number from 1 to %d", len(models.Presets))
			}

			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			task, err := sess.store.CreatePreset(n - 1)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", task.Text, task.ID)
			return err
		},
	}
}

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pending notes by category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			return printGroups(cmd.OutOrStdout(), sess.store.PendingByCategory())
		},
	}
}

func printGroups(out io.Writer, groups []models.CategoryGroup) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(out, "No pending notes.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, g := range groups {
		_, _ = fmt.Fprintf(w, "[%s]\n", g.Name)
		for _, t := range g.Tasks {
			mins := ""
			if t.EstimatedMinutes > 0 {
				mins = fmt.Sprintf("%dm", t.EstimatedMinutes)
			}
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.ID, t.Color, mins, t.Text)
		}
	}
	return w.Flush()
}

func newDoneCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Complete a note and drop it in the jar",
		Long:  "Complete a note and drop it in the jar. ID may be any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			task, err := resolveTask(sess.store, args[0])
			if err != nil {
				return err
			}
			if _, ok := sess.store.CompleteTask(task.ID); !ok {
				return fmt.Errorf("%w: %s", models.ErrTaskNotFound, task.ID)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Done: %s. Streak %d, %d today\n",
				task.Text, sess.store.Streak(), sess.store.TodayCount())
			return err
		},
	}
}

func newRemoveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a note without completing it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			task, err := resolveTask(sess.store, args[0])
			if err != nil {
				return err
			}
			sess.store.DeleteTask(task.ID)

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", task.Text)
			return err
		},
	}
}

func newClearCommand(opts *globalOptions) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all pending notes",
		Long:  "Remove all pending notes. With --completed, empty the jar instead; the streak is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			if completed {
				n := len(sess.store.Completed())
				sess.store.ClearCompletedTasks()
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Emptied the jar (%d tokens)\n", n)
				return err
			}

			n := len(sess.store.Pending())
			sess.store.ClearAllTasks()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d notes\n", n)
			return err
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "empty the jar instead of the board")
	return cmd
}

var errAmbiguousID = errors.New("ambiguous task id")

// resolveTask finds a pending task by exact id or unique id prefix
func resolveTask(st *store.Store, ref string) (models.Task, error) {
	if task, ok := st.Task(ref); ok {
		return task, nil
	}

	var matches []models.Task
	for _, t := range st.Pending() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("%w: %s", models.ErrTaskNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("%w: %s matches %d tasks", errAmbiguousID, ref, len(matches))
	}
}

func paletteNames() string {
	names := make([]string, len(models.Palette))
	for i, c := range models.Palette {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak, counts and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			st := sess.store.Stats()
			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(w, "Pending:   %d\n", st.Active)
			_, _ = fmt.Fprintf(w, "Completed: %d\n", st.Completed)
			_, _ = fmt.Fprintf(w, "Streak:    %d\n", st.Streak)
			_, _ = fmt.Fprintf(w, "Today:     %d\n", st.Today)
			_, _ = fmt.Fprintf(w, "This week: %d\n", st.Week)
			_, _ = fmt.Fprintf(w, "Jar:       %.0f%% of %d", st.JarFill, st.JarCapacity)
			if st.JarFull {
				_, _ = fmt.Fprint(w, " (Jar Full!)")
			}
			_, _ = fmt.Fprintln(w)

			keys, err := sess.kv.Keys()
			if err != nil {
				return fmt.Errorf("list storage keys: %w", err)
			}
			_, _ = fmt.Fprintf(w, "Storage:   %s, %d keys\n", sess.cfg.Storage.Backend, len(keys))

			_, _ = fmt.Fprintln(w, "Achievements:")
			for _, a := range st.Achievements {
				mark := " "
				if a.Unlocked {
					mark = "x"
				}
				_, _ = fmt.Fprintf(w, "  [%s] %s\n", mark, a.Name)
			}
			return nil
		},
	}
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write pending notes, the jar and the streak to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q: use json or yaml", format)
			}

			sess, err := opts.open()
			if err != nil {
				return err
			}
			defer sess.Close()

			snap := sess.store.Snapshot()
			w := cmd.OutOrStdout()

			if format == "yaml" {
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

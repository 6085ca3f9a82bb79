package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"myplan/internal/calendar"
	"myplan/internal/tasks/data"
)

func newMeetingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meeting",
		Aliases: []string{"meetings", "m"},
		Short:   "Meeting commands",
	}
	cmd.AddCommand(newMeetingScanCmd(app))
	cmd.AddCommand(newMeetingImportCmd(app))
	cmd.AddCommand(newMeetingExportCmd(app))
	return cmd
}

func newMeetingScanCmd(app *App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "scan [file|-]",
		Short: "Build a meeting from pasted invite or OCR text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				text []byte
				err  error
			)
			if len(args) == 0 || args[0] == "-" {
				text, err = io.ReadAll(cmd.InOrStdin())
			} else {
				text, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading invite text: %w", err)
			}

			t := data.ScanMeeting(string(text)).ToTask(nowFunc())
			start, end := data.MeetingWindow(t)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", t.Title)
			fmt.Fprintf(out, "When:  %s, %s\n", start.Format("Mon 02 Jan 2006"), data.MeetingDescription(start, end))
			if t.MeetingLink != "" {
				fmt.Fprintf(out, "Link:  %s\n", t.MeetingLink)
			}
			if !save {
				return nil
			}

			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			saved, err := create(cmd, cfg, svc, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved as %s\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Create the meeting task")
	return cmd
}

func newMeetingImportCmd(app *App) *cobra.Command {
	var from, until string

	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Create meeting tasks from an iCalendar file",
		Long: strings.TrimSpace(`
Every VEVENT becomes a meeting task. Recurring events are expanded into one
meeting per occurrence between --from and --until.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := calendar.ImportOptions{From: nowFunc()}
			if from != "" {
				v, ok := data.ParseTime(from)
				if !ok {
					return fmt.Errorf("cannot parse --from %q", from)
				}
				opts.From = v
			}
			if until != "" {
				v, ok := data.ParseTime(until)
				if !ok {
					return fmt.Errorf("cannot parse --until %q", until)
				}
				opts.Until = v
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			meetings, err := calendar.ImportMeetings(f, opts)
			if err != nil {
				return err
			}
			if len(meetings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}

			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			created := 0
			for _, m := range meetings {
				saved, err := create(cmd, cfg, svc, m.Task)
				if err != nil {
					return fmt.Errorf("event %s: %w", m.UID, err)
				}
				created++
				fmt.Fprintf(cmd.OutOrStdout(), "Imported: %s\n", saved.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d meeting(s) imported\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start of the recurrence window (YYYY-MM-DD; default now)")
	cmd.Flags().StringVar(&until, "until", "", "End of the recurrence window (YYYY-MM-DD; default 30 days after --from)")
	return cmd
}

func newMeetingExportCmd(app *App) *cobra.Command {
	var includeTasks, includeCompleted bool

	cmd := &cobra.Command{
		Use:   "export <file.ics|->",
		Short: "Write meetings as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			n, err := calendar.ExportMeetings(w, svc.List(), calendar.ExportOptions{
				IncludeTasks:     includeTasks,
				IncludeCompleted: includeCompleted,
				Now:              nowFunc(),
			})
			if err != nil {
				return err
			}
			if args[0] != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d event(s) to %s\n", n, args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeTasks, "include-tasks", false, "Also export other tasks at their due time")
	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "Keep completed tasks")
	return cmd
}

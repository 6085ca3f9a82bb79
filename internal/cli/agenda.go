package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"myplan/internal/agenda"
	"myplan/internal/tasks/data"
)

func newAgendaCmd(app *App) *cobra.Command {
	var (
		week      bool
		month     bool
		on        string
		completed bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Tasks and meetings by day, with anything overdue first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := nowFunc()
			if on != "" {
				v, ok := data.ParseTime(on)
				if !ok {
					return fmt.Errorf("cannot parse --date %q", on)
				}
				day = v
			}
			dateRange := agenda.DayRange(day)
			switch {
			case week:
				dateRange = agenda.WeekRange(day)
			case month:
				dateRange = agenda.MonthRange(day)
			}

			_, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			tasks := svc.List()
			out := cmd.OutOrStdout()

			if overdue := agenda.QueryOverdue(tasks, dateRange.Start); len(overdue) > 0 {
				fmt.Fprintln(out, "Overdue")
				for _, item := range overdue {
					writeAgendaItem(cmd, item, true)
				}
				fmt.Fprintln(out)
			}

			buckets := agenda.Query(tasks, dateRange)
			if len(buckets) == 0 {
				fmt.Fprintln(out, "Nothing scheduled.")
				return nil
			}
			for i, bucket := range buckets {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, bucket.Date.Format("Mon 02 Jan 2006"))
				items := bucket.Items
				if completed {
					items = bucket.AllItems()
				}
				for _, item := range items {
					writeAgendaItem(cmd, item, false)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&week, "week", false, "Show the week (Mon-Sun) containing the date")
	cmd.Flags().BoolVar(&month, "month", false, "Show the month containing the date")
	cmd.Flags().StringVar(&on, "date", "", "Day to show (YYYY-MM-DD; default today)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Include completed tasks")
	cmd.MarkFlagsMutuallyExclusive("week", "month")
	return cmd
}

func writeAgendaItem(cmd *cobra.Command, item agenda.Item, withDate bool) {
	t := item.Task
	mark := " "
	if t.Completed {
		mark = "x"
	}
	when := item.At.Format(time.Kitchen)
	if withDate {
		when = item.At.Format("Jan 02 ") + when
	}
	line := fmt.Sprintf("  %-8s %s [%s] %s", when, item.Reason, mark, t.Title)
	if item.Reason == agenda.ReasonMeeting {
		start, end := data.MeetingWindow(t)
		line += " (" + data.MeetingDuration(start, end) + ")"
		if t.MeetingLink != "" {
			line += " " + t.MeetingLink
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(line, " "))
}

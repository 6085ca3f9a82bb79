package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"myplan/internal/config"
	"myplan/internal/tasks/data"
	"myplan/internal/tasks/draft"
	"myplan/internal/tasks/service"
	taskview "myplan/internal/tui/tasks"
)

var nowFunc = time.Now

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Task commands",
	}
	cmd.AddCommand(newTaskListCmd(app))
	cmd.AddCommand(newTaskAddCmd(app))
	cmd.AddCommand(newTaskDoneCmd(app))
	cmd.AddCommand(newTaskDeleteCmd(app))
	cmd.AddCommand(newTaskShowCmd(app))
	cmd.AddCommand(newTaskImportCmd(app))
	cmd.AddCommand(newTaskDraftCmd(app))
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var (
		showAll  bool
		showDone bool
		tabName  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}

			var tasks []data.Task
			for _, t := range svc.List() {
				switch {
				case showDone && !t.Completed:
				case !showAll && !showDone && t.Completed:
				default:
					tasks = append(tasks, t)
				}
			}

			if tabName != "" {
				tab, ok := data.ParseTab(tabName)
				if !ok {
					return fmt.Errorf("unknown tab %q (want overdue, today or later)", tabName)
				}
				tasks = data.Categorize(tasks, nowFunc())[tab]
			} else {
				data.SortTasks(tasks)
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			for _, t := range tasks {
				writeTask(cmd, t)
			}
			open, done := data.TaskCount(tasks)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d task(s): %d open, %d done\n", len(tasks), open, done)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "Include completed tasks")
	cmd.Flags().BoolVar(&showDone, "done", false, "Only completed tasks")
	cmd.Flags().StringVar(&tabName, "tab", "", "Only tasks in one tab: overdue, today or later")
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		due         string
		priority    string
		kind        string
		description string
		subtasks    string
		link        string
	)

	cmd := &cobra.Command{
		Use:     "add <title>",
		Aliases: []string{"a"},
		Short:   "Add a task",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := data.Task{
				Title:       strings.TrimSpace(strings.Join(args, " ")),
				Description: description,
				DueDate:     nowFunc(),
				MeetingLink: link,
				SubTasks:    []data.SubTask{},
			}
			var err error
			if due != "" {
				v, ok := data.ParseTime(due)
				if !ok {
					return fmt.Errorf("cannot parse --due %q (use YYYY-MM-DD HH:MM or RFC3339)", due)
				}
				t.DueDate = v
			}
			if t.Priority, err = data.ParsePriority(priority); err != nil {
				return err
			}
			if t.TaskType, err = data.ParseTaskType(kind); err != nil {
				return err
			}
			for _, title := range config.ParseCommaSeparated(subtasks) {
				t.SubTasks = append(t.SubTasks, data.SubTask{Title: title})
			}

			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			saved, err := create(cmd, cfg, svc, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", saved.String())
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date and time (YYYY-MM-DD HH:MM or RFC3339; default now)")
	cmd.Flags().StringVar(&priority, "priority", "", "none, low, medium, high or critical")
	cmd.Flags().StringVar(&kind, "type", "", "manual, learning, loan or meeting")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&subtasks, "subtasks", "", "Comma-separated subtask titles")
	cmd.Flags().StringVar(&link, "link", "", "Meeting link")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id-prefix>",
		Aliases: []string{"do", "d"},
		Short:   "Mark a task as complete",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			task, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "Task already completed: %s\n", task.Title)
				return nil
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Timeout())
			defer cancel()
			if _, err := svc.ToggleComplete(ctx, task.ID); err != nil {
				return fmt.Errorf("completing task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", task.Title)
			return nil
		},
	}
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id-prefix>",
		Aliases: []string{"rm", "del"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			task, err := svc.Get(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Timeout())
			defer cancel()
			if err := svc.Delete(ctx, task.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", task.Title)
			return nil
		},
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id-prefix>",
		Short: "Show one task in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			task, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			md := taskview.TaskMarkdown(*task, nowFunc())
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), taskview.RenderMarkdown(md, cfg.MarkdownStyle, 80))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without styling")
	return cmd
}

func newTaskImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <note.md|dir>",
		Short: "Create tasks from markdown notes",
		Long: strings.TrimSpace(`
Reads a markdown note with optional YAML frontmatter (due, priority, type,
videos, loan, meeting, link). The first heading is the title, the first
paragraph the description and "- [ ]" items become subtasks. Given a
directory, every .md file under it is imported.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := draft.Scan(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found.")
				return nil
			}

			// Parse everything before creating anything.
			tasks := make([]data.Task, 0, len(paths))
			for _, path := range paths {
				d, err := draft.Read(path)
				if err != nil {
					return err
				}
				t, err := d.Task(nowFunc())
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				tasks = append(tasks, t)
			}

			cfg, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				saved, err := create(cmd, cfg, svc, t)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported: %s\n", saved.String())
				fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", saved.ID)
			}
			return nil
		},
	}
}

func newTaskDraftCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draft <id-prefix> <note.md>",
		Short: "Write a task out as a markdown note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := app.connect(cmd)
			if err != nil {
				return err
			}
			task, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			if err := draft.Write(*task, args[1]); err != nil {
				return fmt.Errorf("writing draft: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[1])
			return nil
		},
	}
}

func create(cmd *cobra.Command, cfg *config.Config, svc service.TaskService, t data.Task) (*data.Task, error) {
	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Timeout())
	defer cancel()
	return svc.Create(ctx, t)
}

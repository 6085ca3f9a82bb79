package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"myplan/internal/config"
	"myplan/internal/logs"
	"myplan/internal/tasks/data"
	"myplan/internal/tasks/service"
	"myplan/internal/tui"
	"myplan/internal/tui/theme"
)

// App holds the persistent flags shared by every command.
type App struct {
	APIURL         string
	TimeoutSeconds int
	NoColor        bool

	// runTUI starts the full-screen program; tests replace it.
	runTUI func(cfg *config.Config, svc service.TaskService, loadErr error) error
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{runTUI: tui.Run})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "myplan",
		Short:         "Terminal client for the task planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  myplan

  # Scriptable commands
  myplan task list --tab today
  myplan task add "Renew passport" --due "2025-03-01 09:00" --priority high
  myplan meeting scan invite.txt --save
`),
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			theme.ApplyColorProfile(app.NoColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return startTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "Task API collection URL (overrides config and MYPLAN_API_URL)")
	cmd.PersistentFlags().IntVar(&app.TimeoutSeconds, "timeout", 0, "Request timeout in seconds")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", false, "Plain output without colors (also NO_COLOR)")

	cmd.AddCommand(newTaskCmd(app))
	cmd.AddCommand(newAgendaCmd(app))
	cmd.AddCommand(newLoanCmd())
	cmd.AddCommand(newMeetingCmd(app))
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	defer logs.Close()
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (app *App) config() (*config.Config, error) {
	cfg, err := config.Load(config.CLIFlags{
		APIURL:         app.APIURL,
		TimeoutSeconds: app.TimeoutSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// connect loads config and fetches the task list.
func (app *App) connect(cmd *cobra.Command) (*config.Config, service.TaskService, error) {
	cfg, err := app.config()
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Timeout())
	defer cancel()
	svc, err := service.NewTaskService(ctx, cfg.APIURL, cfg.Timeout())
	if err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

func startTUI(cmd *cobra.Command, app *App) error {
	cfg, err := app.config()
	if err != nil {
		return err
	}
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}
	if err := logs.Initialize(cfg.StateDir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}

	// A failed first load still opens the UI; the status bar reports it and
	// r retries.
	svc := service.New(cfg.APIURL, cfg.Timeout())
	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.Timeout())
	loadErr := svc.Reload(ctx)
	cancel()
	if loadErr != nil {
		logs.Logger.Printf("Initial load failed: %v", loadErr)
	}

	logs.Logger.Println("Starting app in TUI mode")
	return app.runTUI(cfg, svc, loadErr)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeTask prints one task as a list row.
func writeTask(cmd *cobra.Command, t data.Task) {
	kind := ""
	if k := t.Kind(); k != data.TypeManual {
		kind = " <" + strings.ToLower(string(k)) + ">"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s%s\n", t.ShortID(), t.String(), kind)
	if n := len(t.SubTasks); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "         %d/%d subtasks done\n", n-t.PendingSubTasks(), n)
	}
}

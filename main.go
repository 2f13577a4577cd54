package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/heyandras/gridwatch/config"
	"github.com/heyandras/gridwatch/internal/logging"
	"github.com/heyandras/gridwatch/internal/version"
	"github.com/heyandras/gridwatch/store"
	"github.com/heyandras/gridwatch/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fatal(fmt.Errorf("%v", r))
		}
	}()

	// A .env in the working directory may set GRIDWATCH_DATA_FILE
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	dataFile   string
	configPath string
	debug      bool
}

// app is what a command needs once the flags are resolved
type app struct {
	config  *config.Manager
	logger  *zap.Logger
	session *store.Session
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gridwatch",
		Short: "Dashboard for electrical consumption issues",
		Long: `gridwatch loads a JSON document of electrical consumption issues into a
terminal dashboard for filtering them and editing their status and solution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(opts)
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dataFile, "file", "f", "", "issue document (default $"+config.EnvDataFile+", config data_file, or "+config.DefaultDataFile+")")
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/gridwatch/config.json)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to debug.log next to the config file")

	rootCmd.AddCommand(
		newSummaryCmd(opts),
		newExportCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func runDashboard(opts *rootOptions) error {
	a, err := opts.open()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	model := tui.NewModel(a.session, a.config, a.logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI exited with error", zap.Error(err))
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (o *rootOptions) configManager() (*config.Manager, error) {
	if o.configPath != "" {
		return config.NewManagerAt(o.configPath)
	}
	return config.NewManager()
}

// open resolves the config, logger, and data file, then loads the issues
func (o *rootOptions) open() (*app, error) {
	cfg, err := o.configManager()
	if err != nil {
		return nil, err
	}

	enabled := o.debug || cfg.GetDebugLoggingEnabled()
	logger, err := logging.New(enabled, filepath.Join(cfg.Dir(), logging.FileName))
	if err != nil {
		return nil, err
	}

	path := config.ResolveDataFile(o.dataFile, cfg)
	logger.Info("Starting gridwatch",
		zap.String("version", version.CliVersion),
		zap.String("data_file", path))

	session, err := store.Open(store.New(path, logger))
	if err != nil {
		logger.Error("Failed to load issues", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	return &app{config: cfg, logger: logger, session: session}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

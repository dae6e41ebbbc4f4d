package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aphreditto/diary/internal/config"
	"github.com/aphreditto/diary/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is set at build time with -ldflags "-X github.com/aphreditto/diary/cmd.version=...".
var version = "dev"

var (
	cfgFile    string
	jsonOutput bool
	sourceKind string
	sourcePath string
	appConfig  *config.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "diary",
	Version: version,
	Short:   "Browse a transition diary by week, month or page",
	Long: `diary browses journal entries in calendar windows. Entries can be filtered
by topic, detail level and nsfw flag; the selected entry stays in view when
the window or the filter changes.

Without a subcommand diary opens the interactive browser. When stdout is
not a terminal it prints the current page instead.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if sourceKind != "" {
			appConfig.Source = sourceKind
		}
		if sourcePath != "" {
			appConfig.SourcePath = sourcePath
		}
		if !validKind(appConfig.Source) {
			return fmt.Errorf("unknown source %q", appConfig.Source)
		}

		logger = config.NewLogger(appConfig.LogLevel, os.Stderr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return listRun(cmd.Context(), os.Stdout, listOptions{})
		}
		return tuiRun(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "entry source (json|markdown|sqlite)")
	rootCmd.PersistentFlags().StringVar(&sourcePath, "source-path", "", "file or directory of the entry source")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// tuiRun opens the browser. The terminal belongs to Bubble Tea, so logs go
// to diary.log in the data directory.
func tuiRun(cmd *cobra.Command) error {
	if err := os.MkdirAll(appConfig.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(appConfig.DataDir, "diary.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger = config.NewLogger(appConfig.LogLevel, logFile)

	sess, err := openSession(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer sess.Close()

	epoch, _ := appConfig.EpochTime(time.Local)
	return ui.RunTUI(sess.nav, ui.TUIConfig{
		MaxWidth: appConfig.MaxWidth,
		Theme:    ui.ResolveTheme(appConfig.Theme),
		Epoch:    epoch,
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/stark-bootcamp.net/internal/adapter/logging"
	"gitlab.com/stark-bootcamp.net/internal/client/apiclient"
	"gitlab.com/stark-bootcamp.net/internal/client/config"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/session"
)

var (
	// Global flags
	configPath string
	apiURL     string
	verbose    bool

	cfg     config.Config
	logger  *logging.ZapLogger
	store   *session.Store
	api     *apiclient.Client
	console *feedback.Console
)

var rootCmd = &cobra.Command{
	Use:   "bootcamp",
	Short: "Stark bootcamp contest client",
	Long: `bootcamp registers a team and walks it through the five timed stages:
the coding problem, the build, the design, the logic map and the
presentation. Every finished stage ends on the leaderboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger = logging.NewZapLoggerWithLevel(level)

	store, err = session.Open(cfg.Team.StatePath)
	if err != nil {
		return err
	}
	api = apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
	console = feedback.NewConsole(cmd.OutOrStdout())
	logger.Debug("Client ready", "api", cfg.API.BaseURL, "state", cfg.Team.StatePath)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the client config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "contest backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(registerCmd, whoamiCmd, logoutCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(editorCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

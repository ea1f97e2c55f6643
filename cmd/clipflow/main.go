package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clipflow/clipflow-tui/internal/api"
	"github.com/clipflow/clipflow-tui/internal/app"
	"github.com/clipflow/clipflow-tui/internal/config"
	"github.com/clipflow/clipflow-tui/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "clipflow",
	Short: "Terminal client for the ClipFlow rough-cut backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer logger.Sync()

		logger.Info("starting clipflow",
			zap.String("version", config.Version),
			zap.String("api_url", cfg.APIURL),
		)

		client := api.New(cfg.APIURL, logger)
		program := tea.NewProgram(app.New(client, cfg, logger), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipflow %s (%s)\n", config.Version, config.GitCommit)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

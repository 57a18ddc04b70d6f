package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spf13/cobra"
)

var (
	trainConfigPath string
	logLevel        string
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "Train and run the hotel review sentiment model",
	Long: `reviewlens trains a small neural sentiment classifier on labeled hotel
reviews, publishes the resulting artifacts and analyzes reviews from the
command line using the same pipeline as the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv(config.AppEnv())
		if logLevel != "" {
			logging.InitLoggerWithLevel(logLevel)
		} else {
			logging.InitLogger()
		}
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("[CLI] Command failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&trainConfigPath, "config", "config/train.yaml", "training config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")

	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newIssuesCmd())
}

func writeJSON(cmd *cobra.Command, data []byte) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

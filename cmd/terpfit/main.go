package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
)

var (
	envFile string
	verbose bool

	cfg    *config.Config
	logger *internal.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "terpfit",
	Short: "TerpFit - workout log, campus gyms and a fitness assistant",
	Long: `TerpFit keeps a workout history, knows the campus gyms, and talks to a
generative assistant that can propose workout checklists.

Run "terpfit serve" for the HTTP API or "terpfit chat" for the terminal chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = internal.NewLogger(cfg.Env, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(workoutsCmd)
	rootCmd.AddCommand(gymsCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/parkwacht/internal/config"
	"github.com/friendsincode/parkwacht/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	configPath string
	verbose    bool
)

// errIncompleteRun marks a run where at least one session failed or was
// skipped. It maps to exit code 2 so operators can script around it.
var errIncompleteRun = errors.New("one or more sessions were not booked")

var rootCmd = &cobra.Command{
	Use:   "parkwacht",
	Short: "Parkwacht - Amsterdam visitor parking session automation",
	Long: `Parkwacht splits a parking window into short sessions separated by
mandatory breaks and books each one against the visitor parking portal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: parkwacht.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "cancelled")
		os.Exit(130)
	}
	if err != nil {
		if errors.Is(err, errIncompleteRun) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(verbose)
	return nil
}

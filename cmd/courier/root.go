package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/courierflow/courier"
	"github.com/courierflow/courier/internal/logging"
	"github.com/courierflow/courier/pkg/adapters/console"
	"github.com/courierflow/courier/pkg/adapters/memory"
	"github.com/courierflow/courier/pkg/triage"
)

var rootCmd = &cobra.Command{
	Use:   "courier",
	Short: "Courier is a graph-based record triage engine",
	Long:  `Courier runs incoming email records through a compiled workflow graph: classify, set aside or draft a reply, and notify.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// newLogger builds the application logger from the --log-level flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}

// newLocalService wires a service with the built-in rule collaborators and
// the console notifier, for process/demo/graph commands.
func newLocalService(cmd *cobra.Command, plain bool, opts ...courier.Option) (*courier.Service, error) {
	var notifierOpts []console.Option
	if plain {
		notifierOpts = append(notifierOpts, console.WithPlainOutput())
	}

	deps := triage.Collaborators{
		Classifier: memory.DefaultClassifier(),
		Responder:  memory.NewResponder(),
		Notifier:   console.New(notifierOpts...),
	}
	opts = append([]courier.Option{courier.WithLogger(newLogger(cmd))}, opts...)
	return courier.New(deps, opts...)
}

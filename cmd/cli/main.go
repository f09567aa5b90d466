package main

import (
	"os"

	"github.com/postie/waitlist/config"
	"github.com/postie/waitlist/internal/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger)

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "cli",
		Short:         "Waitlist maintenance and submission tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand(logger))
	root.AddCommand(newJoinCommand())

	return root
}

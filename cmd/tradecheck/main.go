package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trogers1052/bond-crm-service/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	institutionsFile string
	logLevel         string
	logger           *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tradecheck",
		Short:         "Check trade directions in chat transcripts without the server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.institutionsFile, "institutions", "", "YAML file listing institutions that quote in the third person")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newValidateCmd(opts),
		newClassifyCmd(opts),
	)

	return rootCmd
}

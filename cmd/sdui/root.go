package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	"github.com/alexisbeaulieu97/sdui/internal/config"
	"github.com/alexisbeaulieu97/sdui/internal/logger"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sdui",
		Short:         "sdui renders server-driven UI scene documents in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), flags.verbose)))
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (.yaml or .toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newFmtCmd())
	cmd.AddCommand(newViewCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newService loads the configuration and builds the services a command runs
// on. Service logs go to the command's stderr.
func newService(cmd *cobra.Command, flags *rootFlags, opts app.Options) (*app.Service, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: cfg.Log.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	opts.Config = cfg
	opts.Logger = log
	return app.NewService(opts)
}

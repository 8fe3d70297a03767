package main

import (
	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/spf13/cobra"
)

// loggerFactory builds the logger a command reports progress with.
type loggerFactory func(cmd *cobra.Command) (i.Logger, error)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "mazegen",
		Short:        "Generate and inspect mazes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "logrus level for progress output")

	var cliLogger loggerFactory = func(cmd *cobra.Command) (i.Logger, error) {
		l, err := logger.New("MAZEGEN", config.ColorGreen, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		return l, l.SetLevel(logLevel)
	}

	root.AddCommand(
		newGenerateCmd(cliLogger),
		newBenchCmd(cliLogger),
		newTokenCmd(),
	)
	return root
}

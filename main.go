package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.3.0"

var configFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storyverse",
		Short:         "Storyverse writing activity server",
		Long:          "Records daily writing activity and serves streaks and activity heatmaps for Storyverse writers.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default ./config/config.yaml or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newRecordCmd(),
		newStreakCmd(),
		newDatesCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/entrhq/uiverify/pkg/config"
	"github.com/entrhq/uiverify/pkg/harness"
)

// errScenariosFailed is returned by run --strict when a scenario failed.
// The summary has already been printed.
var errScenariosFailed = errors.New("one or more scenarios failed")

// harnessFactory builds the harness for a run. Tests swap in a fake driver.
type harnessFactory func(s *config.Settings, opts ...harness.Option) (*harness.Harness, error)

func defaultHarness(s *config.Settings, opts ...harness.Option) (*harness.Harness, error) {
	return harness.New(s, opts...)
}

type rootOptions struct {
	configFile string
	newHarness harnessFactory
}

func newRootCmd(factory harnessFactory) *cobra.Command {
	opts := &rootOptions{newHarness: factory}

	root := &cobra.Command{
		Use:           "uiverify",
		Short:         "Browser verification scenarios for the Evita web application",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "uiverify %s\n" .Version}}`)
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./uiverify.yaml)")

	root.AddCommand(newRunCmd(opts), newListCmd(opts), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the uiverify version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("uiverify %s\n", Version)
		},
	}
}

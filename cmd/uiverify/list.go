package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/entrhq/uiverify/pkg/config"
	"github.com/entrhq/uiverify/pkg/harness"
)

func newListCmd(root *rootOptions) *cobra.Command {
	var scenarioFile string
	var steps bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(root.configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("scenarios") {
				settings.ScenarioFile = scenarioFile
			}

			set, err := harness.LoadScenarios(settings)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, sc := range set {
				fmt.Fprintf(tw, "%s\t%s\n", sc.Name, sc.Description)
				if !steps {
					continue
				}
				for i, st := range sc.Steps {
					fmt.Fprintf(tw, "\t  %d. %s\n", i+1, st.Describe())
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&scenarioFile, "scenarios", "", "YAML file with additional scenarios")
	cmd.Flags().BoolVar(&steps, "steps", false, "print each scenario's steps")
	return cmd
}

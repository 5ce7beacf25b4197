package main

import (
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/entrhq/uiverify/pkg/config"
	"github.com/entrhq/uiverify/pkg/harness"
)

type runOptions struct {
	scenarioFile string
	baseURL      string
	deployedURL  string
	output       string
	headed       bool
	strict       bool
	verbose      int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [pattern...]",
		Short: "Run verification scenarios (all when no pattern is given)",
		Long: `Run one or more verification scenarios. Patterns are glob expressions
matched against scenario names, e.g. "hidden-*". Each scenario writes
verification.png on success or error.png on failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(root.configFile)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, settings); err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			h, err := root.newHarness(settings, harness.WithStdout(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer h.Close()

			results, err := h.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			if opts.strict {
				for _, res := range results {
					if !res.Passed() {
						return errScenariosFailed
					}
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.scenarioFile, "scenarios", "", "YAML file with additional scenarios")
	f.StringVar(&opts.baseURL, "base-url", "", "base URL of the local application")
	f.StringVar(&opts.deployedURL, "deployed-url", "", "URL of the deployed application")
	f.StringVarP(&opts.output, "output", "o", "", "output directory for screenshots and reports")
	f.BoolVar(&opts.headed, "headed", false, "show the browser window")
	f.BoolVar(&opts.strict, "strict", false, "exit with status 1 when any scenario fails")
	f.CountVarP(&opts.verbose, "verbose", "v", "increase console output (-v verbose, -vv debug)")
	return cmd
}

// apply layers explicitly set flags over the loaded settings.
func (o *runOptions) apply(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()
	if flags.Changed("scenarios") {
		path, err := homedir.Expand(o.scenarioFile)
		if err != nil {
			return err
		}
		s.ScenarioFile = path
	}
	if flags.Changed("base-url") {
		s.Targets.LocalURL = o.baseURL
	}
	if flags.Changed("deployed-url") {
		s.Targets.DeployedURL = o.deployedURL
	}
	if flags.Changed("output") {
		dir, err := homedir.Expand(o.output)
		if err != nil {
			return err
		}
		s.Output.Dir = dir
	}
	if o.headed {
		s.Browser.Headless = false
	}
	switch {
	case o.verbose >= 2:
		s.Logging.Verbosity = "debug"
	case o.verbose == 1:
		s.Logging.Verbosity = "verbose"
	}
	return nil
}

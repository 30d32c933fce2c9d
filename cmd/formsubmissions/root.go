package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formsubmissions",
		Short: "Fetch and normalise form-builder submissions",
		Long: `formsubmissions downloads a form's field definitions and submissions from
the form-builder API and prints every submission as a list of typed answers.

Credentials come from flags, the environment (FORMBUILDER_URL,
FORMBUILDER_USERNAME, FORMBUILDER_PASSWORD), a .env file or a YAML config file.

Examples:
  formsubmissions forms
  formsubmissions submissions 50313 --output yaml
  formsubmissions submissions --template report.tpl`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate("formsubmissions version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.flags.configPath, "config", "", "YAML config file")
	flags.StringVar(&a.flags.envFile, "env-file", "", "dotenv file (default .env when present)")
	flags.StringVar(&a.flags.baseURL, "base-url", "", "form-builder API root")
	flags.StringVar(&a.flags.username, "username", "", "API username")
	flags.StringVar(&a.flags.password, "password", "", "API password")
	flags.StringVar(&a.flags.timeout, "timeout", "", "per-request timeout, e.g. 30s")
	flags.StringVar(&a.flags.logLevel, "log-level", "warn", "debug, info, warn or error")

	root.AddCommand(
		newFormsCommand(a),
		newFormCommand(a),
		newFieldsCommand(a),
		newSubmissionsCommand(a),
	)
	return root
}

func parseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &flagError{name: "timeout", value: raw, err: err}
	}
	return d, nil
}

type flagError struct {
	name  string
	value string
	err   error
}

func (e *flagError) Error() string {
	return "invalid --" + e.name + " " + e.value + ": " + e.err.Error()
}

func (e *flagError) Unwrap() error { return e.err }

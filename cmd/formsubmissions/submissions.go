package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	formsubmissions "github.com/goliatone/go-formsubmissions"
	"github.com/goliatone/go-formsubmissions/pkg/client"
	"github.com/goliatone/go-formsubmissions/pkg/config"
	"github.com/goliatone/go-formsubmissions/pkg/prompt"
	"github.com/goliatone/go-formsubmissions/pkg/render"
)

var errNoFormID = errors.New("no form id given; pass one as argument, set FORMBUILDER_FORM_ID or run interactively")

type submissionsFlags struct {
	output      string
	template    string
	concurrency int
	noSanitize  bool
}

func newSubmissionsCommand(a *app) *cobra.Command {
	var flags submissionsFlags

	cmd := &cobra.Command{
		Use:   "submissions [id]",
		Short: "Fetch, normalise and print the submissions of a form",
		Long: `Fetch every submission of a form and print it with the chosen renderer
(text, json, yaml or template). Without an id the configured form is used; on a
terminal a picker lists the available forms.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			applySubmissionsFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			c, err := a.newClient(cfg)
			if err != nil {
				return err
			}

			formID, err := a.resolveFormID(ctx, c, cfg, args)
			if err != nil {
				return err
			}

			export, err := formsubmissions.New(c,
				formsubmissions.WithConcurrency(cfg.Concurrency),
				formsubmissions.WithLogger(a.logger()),
			).Harvest(ctx, formID)
			if err != nil {
				return err
			}

			output := cfg.Output
			if strings.TrimSpace(cfg.Template) != "" && !cmd.Flags().Changed("output") {
				output = "template"
			}
			out, err := render.Default().Render(ctx, output, export, render.Options{
				Sanitize: cfg.Sanitize,
				Template: cfg.Template,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput, "renderer: text, json, yaml or template")
	cmd.Flags().StringVar(&flags.template, "template", "", "pongo2 template file or inline source")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", config.DefaultConcurrency, "submissions mapped in parallel")
	cmd.Flags().BoolVar(&flags.noSanitize, "no-sanitize", false, "keep HTML markup in answers")
	return cmd
}

func applySubmissionsFlags(cmd *cobra.Command, cfg *config.Config, flags submissionsFlags) {
	set := cmd.Flags()
	if set.Changed("output") {
		cfg.Output = flags.output
	}
	if set.Changed("template") {
		cfg.Template = flags.template
	}
	if set.Changed("concurrency") {
		cfg.Concurrency = flags.concurrency
	}
	if set.Changed("no-sanitize") {
		cfg.Sanitize = !flags.noSanitize
	}
}

// resolveFormID prefers the argument, then the configured id, then the
// interactive picker.
func (a *app) resolveFormID(ctx context.Context, c *client.Client, cfg config.Config, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if id := strings.TrimSpace(cfg.FormID); id != "" {
		return id, nil
	}
	if !a.interactive() {
		return "", errNoFormID
	}

	forms, err := c.Forms(ctx)
	if err != nil {
		return "", err
	}
	form, err := prompt.PickForm(ctx, a.driver, forms)
	if err != nil {
		return "", err
	}
	a.logger().Info("form selected", slog.String("form_id", form.ID.String()), slog.String("name", form.Name))
	return form.ID.String(), nil
}

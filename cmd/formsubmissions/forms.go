package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsubmissions/pkg/fields"
	"github.com/goliatone/go-formsubmissions/pkg/model"
)

func newFormsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the forms visible to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			c, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			forms, err := c.Forms(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, form := range forms {
				fmt.Fprintf(w, "%s\t%s\n", form.ID, form.Name)
			}
			return w.Flush()
		},
	}
}

func newFormCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form <id>",
		Short: "Print the details of one form as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			c, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			details, err := c.Form(ctx, args[0])
			if err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, details.Raw, "", "  "); err != nil {
				return fmt.Errorf("format form %s: %w", args[0], err)
			}
			out.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}
}

func newFieldsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <id>",
		Short: "Print the classified field definitions of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			c, err := a.newClient(cfg)
			if err != nil {
				return err
			}
			raws, err := c.Fields(ctx, args[0])
			if err != nil {
				return err
			}

			result := fields.CreateAll(raws)
			payload := struct {
				Fields   []model.FieldDefinition `json:"fields"`
				Warnings []model.Warning         `json:"warnings,omitempty"`
			}{Fields: result.Definitions, Warnings: result.Warnings}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}
}

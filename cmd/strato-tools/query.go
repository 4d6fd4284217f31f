package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ashwinyue/strato-tools/internal/service/query"
)

type outputOptions struct {
	jsonOutput bool
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var out outputOptions
	cmd := &cobra.Command{
		Use:   "recommend <query...>",
		Short: "Recommend up to three tools for a free-text request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			recs := query.Recommend(cat, text)
			message := query.TemplateResponse(text, len(recs))

			if out.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"message":         message,
					"recommendations": recs,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			if len(recs) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				return printTools(cmd.OutOrStdout(), recs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&out.jsonOutput, "json", false, "print JSON output")
	return cmd
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var (
		out      outputOptions
		rawQuery string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List catalog tools matching a shareable filter query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := query.ParseFilterState(strings.TrimPrefix(rawQuery, "?"))
			if err != nil {
				return fmt.Errorf("invalid filter query: %w", err)
			}

			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}

			tools := query.FilterAndSort(cat, state)
			if out.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"total":       cat.Len(),
					"filtered":    len(tools),
					"share_query": state.Encode(),
					"items":       tools,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d tools\n\n", len(tools), cat.Len())
			return printTools(cmd.OutOrStdout(), tools)
		},
	}
	cmd.Flags().StringVarP(&rawQuery, "query", "q", "", `filter query string, e.g. "categories=AI&sort=Latest"`)
	cmd.Flags().BoolVar(&out.jsonOutput, "json", false, "print JSON output")
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and catalog without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			source := "embedded seed"
			if opts.cfg.Catalog.Path != "" {
				source = opts.cfg.Catalog.Path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok (%s)\ncatalog ok: %d tools, %d categories, %d industries from %s\n",
				opts.configPath, cat.Len(), len(cat.Categories()), len(cat.Industries()), source)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"insights-workers/internal/assistant"
	fs "insights-workers/internal/workers/assistant/filter-suggestions"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and preview the suggestion catalog",
	}

	var path string
	cmd.PersistentFlags().StringVar(&path, "path", "", "catalog file (built-in catalog when empty)")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog against its schema and rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := fs.LoadCatalog(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d suggestions\n", len(catalog))
			return nil
		},
	}

	var (
		sources    []string
		reconciled bool
		question   string
	)
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Show the suggestions and reply a workspace would get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range sources {
				if !assistant.IsKnownSource(s) {
					return fmt.Errorf("unknown source %q", s)
				}
			}
			catalog, err := fs.LoadCatalog(path)
			if err != nil {
				return err
			}

			sctx := assistant.SuggestionContext{
				ConnectedSources:   append([]string{}, sources...),
				IsReconciled:       reconciled,
				HasMultipleSources: len(sources) > 1,
			}
			out := struct {
				Context     assistant.SuggestionContext `json:"context"`
				Suggestions []assistant.SuggestionView  `json:"suggestions"`
				Reply       *assistant.Reply            `json:"reply,omitempty"`
			}{
				Context:     sctx,
				Suggestions: assistant.Annotate(assistant.FilterSuggestions(catalog, sctx), sctx),
			}
			if question != "" {
				reply := assistant.Respond(question, sctx)
				out.Reply = &reply
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	preview.Flags().StringSliceVar(&sources, "sources", nil, "connected source ids, comma separated")
	preview.Flags().BoolVar(&reconciled, "reconciled", false, "treat the workspace as reconciled")
	preview.Flags().StringVar(&question, "question", "", "also answer this question")

	cmd.AddCommand(validate, preview)
	return cmd
}

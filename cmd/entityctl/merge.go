package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest-merges",
	Short: "List same-category entity pairs that look like duplicates",
	Long: `suggest-merges scores every pair of entities in the same category and
prints the pairs whose similarity falls between the suggestion floor and the
match threshold, most similar first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.resolver()
		if err != nil {
			return err
		}

		suggestions, err := res.SuggestMerges(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if viper.GetBool("json") {
			return writeJSON(out, suggestionRows(suggestions))
		}
		printSuggestions(out, suggestions)
		return nil
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <source-id> <target-id>",
	Short: "Move all meeting links from source to target and delete source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceID, targetID, err := parseMergeArgs(args)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.resolver()
		if err != nil {
			return err
		}

		merged, err := res.Merge(cmd.Context(), sourceID, targetID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if viper.GetBool("json") {
			return writeJSON(out, map[string]interface{}{
				"merged":    merged,
				"source_id": sourceID,
				"target_id": targetID,
			})
		}
		printMerge(out, merged, sourceID, targetID)
		if !merged {
			return fmt.Errorf("merge rejected")
		}
		return nil
	},
}

func parseMergeArgs(args []string) (uuid.UUID, uuid.UUID, error) {
	sourceID, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid source id %q: %w", args[0], err)
	}
	targetID, err := uuid.Parse(args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid target id %q: %w", args[1], err)
	}
	return sourceID, targetID, nil
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(mergeCmd)
}

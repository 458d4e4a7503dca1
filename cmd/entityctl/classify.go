package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <name>",
	Short: "Show the category a new entity with this name would receive",
	Args:  cobra.MinimumNArgs(1),
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

		hint, _ := cmd.Flags().GetString("hint")
		name := strings.Join(args, " ")
		slug := res.Classify(cmd.Context(), name, hint)

		out := cmd.OutOrStdout()
		if viper.GetBool("json") {
			return writeJSON(out, map[string]string{"name": name, "type": slug})
		}
		printClassification(out, name, slug)
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("hint", "", "category hint as produced by the extractor (e.g. person, org, product)")

	rootCmd.AddCommand(classifyCmd)
}

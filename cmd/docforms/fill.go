package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docforms/pkg/renderers/tui"
)

var (
	fillValuesFile string
	fillFormat     string
	fillNoConfirm  bool
)

var fillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Prompt for every field of a template and print the replacement map",
	Long: `Fill walks the form schema section by section, prompts for each field,
validates the answers and prints the {{key}} replacement map.

Examples:
  docforms fill peticao.txt
  docforms fill peticao.txt --values cliente.json --format pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		result, err := a.analyze(cmd, args[0])
		if err != nil {
			return err
		}

		opts := renderOptions()
		if fillValuesFile != "" {
			values, err := readValues(fillValuesFile)
			if err != nil {
				return err
			}
			opts.Values = values
		}

		renderer, err := tui.New(
			tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
			tui.WithOutputFormat(tui.OutputFormat(fillFormat)),
			tui.WithConfirm(!fillNoConfirm),
		)
		if err != nil {
			return err
		}
		out, err := renderer.Render(cmd.Context(), result, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	fillCmd.Flags().StringVar(&fillValuesFile, "values", "", "JSON file with prefilled values keyed by placeholder")
	fillCmd.Flags().StringVar(&fillFormat, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	fillCmd.Flags().BoolVar(&fillNoConfirm, "yes", false, "skip the final confirmation")
}

func readValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	return values, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docforms/pkg/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a template and print its form schema",
	Long: `Analyze extracts the placeholders of a template and prints the analysis
with the configured renderer.

Examples:
  docforms analyze peticao.txt                 # full result as JSON
  docforms analyze peticao.json -o yaml        # Google Docs export, YAML output
  docforms analyze peticao.txt -o openapi      # submission contract
  docforms analyze peticao.txt --only 'person_active*'`,
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
		return a.emit(cmd, result, "")
	},
}

var personasCmd = &cobra.Command{
	Use:   "personas <file>",
	Short: "Print persona counts and suggestions for a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		result, err := a.analyze(cmd, args[0])
		if err != nil {
			return err
		}
		return a.emit(cmd, result, render.ViewPersonas)
	},
}

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Print the flat key table used by the document-fill step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		result, err := a.analyze(cmd, args[0])
		if err != nil {
			return err
		}
		return a.emit(cmd, result, render.ViewTable)
	},
}

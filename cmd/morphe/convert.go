package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/morphedb/morphe/assist"
	"github.com/morphedb/morphe/dialect"
	"github.com/morphedb/morphe/dialect/convert"
)

var (
	convertModelPath string
	convertFrom      string
	convertTo        string
	convertExplain   bool
	convertModel     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a canonical model into another dialect's DDL",
	Long: fmt.Sprintf(`Convert renders a canonical model as DDL for a target dialect
(%s). Clean relational graphs map through the static type tables; a
document-dialect endpoint or a graph past the complexity threshold is
delegated to the generative collaborator when GEMINI_API_KEY is set, with
a silent fallback to the deterministic tables on any failure.`,
		strings.Join(dialect.All(), ", ")),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(convertModelPath)
		if err != nil {
			return err
		}

		log := newLogger()
		opts := []convert.Option{convert.WithLogger(log)}
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			provider, err := assist.NewGeminiProvider(cmd.Context(), assist.Config{
				APIKey: key,
				Model:  convertModel,
			}, assist.WithLogger(log))
			if err != nil {
				return err
			}
			opts = append(opts, convert.WithProvider(provider))
		}

		res, err := convert.New(opts...).Convert(cmd.Context(), m, convertFrom, convertTo)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(res)
		}
		fmt.Println(res.DDL)
		if convertExplain {
			renderExplanations(res.Explanations)
		}
		return nil
	},
}

func renderExplanations(explanations []convert.Explanation) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Entity", "Attribute", "Source Type", "Target Type", "Reason"})
	table.SetBorder(false)
	for _, e := range explanations {
		table.Append([]string{e.Entity, e.Attribute, e.SourceType, e.TargetType, e.Reason})
	}
	table.Render()
}

func init() {
	convertCmd.Flags().StringVarP(&convertModelPath, "file", "f", "", "canonical model JSON file (required)")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "source dialect (required)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target dialect (required)")
	convertCmd.Flags().BoolVar(&convertExplain, "explain", false, "print the per-attribute mapping explanations")
	convertCmd.Flags().StringVar(&convertModel, "model", "", "generation model for the AI-assisted path")
	convertCmd.MarkFlagRequired("file")
	convertCmd.MarkFlagRequired("from")
	convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

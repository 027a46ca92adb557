package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morphedb/morphe/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <model.json>",
	Short: "Check a canonical model's structural integrity",
	Long: `Validate runs the shared structural checks against a hand-authored or
externally supplied model: entity ids and attribute sets, logical types,
duplicate attribute names, and relationship endpoint resolution.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var m schema.Model
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		if err := schema.Validate(&m); err != nil {
			return err
		}
		fmt.Printf("%s: %d entities, %d relationships, no issues found\n",
			args[0], len(m.Entities), len(m.Relationships))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/morphedb/morphe/schema"
)

var (
	debug      bool
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "morphe",
	Short: "Model database schemas as a typed graph",
	Long: `morphe models a database schema as a dialect-neutral graph of entities
and relationships. It ingests Prisma, Mongoose and Sequelize definitions,
converts the graph into MySQL, PostgreSQL, SQLite or MongoDB DDL, and
computes structural diffs between two graph snapshots.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of tables")
}

// newLogger builds the process logger. Debug mode gets the development
// console encoder; otherwise logging is off so command output stays clean.
func newLogger() *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadModel reads and validates a canonical model JSON file. Every
// command re-validates externally supplied models at its own boundary.
func loadModel(path string) (*schema.Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m schema.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := schema.Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func printJSON(v any) error {
	return writeModelJSON(os.Stdout, v)
}

func writeModelJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

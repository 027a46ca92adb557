package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/morphedb/morphe/ingest"
)

var ingestOut string

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Build a canonical model from source definition files",
	Long: `Ingest reads Prisma, Mongoose and Sequelize definition files, detects the
dialect of each, and merges everything into one canonical model. Files whose
dialect cannot be detected or whose extraction fails are skipped with a
warning; the batch never aborts because of one bad file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := make([]ingest.File, 0, len(args))
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files = append(files, ingest.File{Path: path, Content: string(content)})
		}

		ing := ingest.New(ingest.WithLogger(newLogger()))
		res, err := ing.Ingest(cmd.Context(), files)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		fmt.Fprintf(os.Stderr, "%d of %d files contributed, %d entities, %d relationships\n",
			res.Contributed, len(files), len(res.Model.Entities), len(res.Model.Relationships))

		if ingestOut != "" {
			out, err := os.Create(ingestOut)
			if err != nil {
				return err
			}
			defer out.Close()
			return writeModelJSON(out, res.Model)
		}
		return printJSON(res.Model)
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOut, "output", "o", "", "write the model JSON to a file instead of stdout")
	rootCmd.AddCommand(ingestCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/morphedb/morphe/schema"
	"github.com/morphedb/morphe/schema/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compute the structural diff between two model snapshots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := loadModel(args[0])
		if err != nil {
			return err
		}
		after, err := loadModel(args[1])
		if err != nil {
			return err
		}
		cs, err := diff.Diff(before, after)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cs)
		}
		if cs.Empty() {
			fmt.Println("No changes")
			return nil
		}
		renderChangeSet(cs)
		return nil
	},
}

func renderChangeSet(cs *diff.ChangeSet) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Change", "Subject", "Detail"})
	table.SetBorder(false)
	for _, e := range cs.EntitiesAdded {
		table.Append([]string{"entity", "added", e.Name, fmt.Sprintf("%d attributes", len(e.Attributes))})
	}
	for _, e := range cs.EntitiesRemoved {
		table.Append([]string{"entity", "removed", e.Name, fmt.Sprintf("%d attributes", len(e.Attributes))})
	}
	for _, c := range cs.EntitiesModified {
		table.Append([]string{"entity", "modified", c.Name,
			fmt.Sprintf("%d -> %d attributes", len(c.Before), len(c.After))})
	}
	for _, r := range cs.RelationshipsAdded {
		table.Append([]string{"relationship", "added", relationshipSubject(r), string(r.Cardinality)})
	}
	for _, r := range cs.RelationshipsRemoved {
		table.Append([]string{"relationship", "removed", relationshipSubject(r), string(r.Cardinality)})
	}
	for _, c := range cs.RelationshipsModified {
		table.Append([]string{"relationship", "modified", relationshipSubject(c.After),
			fmt.Sprintf("was %s.%s -> %s", c.Before.SourceAttr, c.Before.TargetAttr, c.Before.Cardinality)})
	}
	table.Render()
}

func relationshipSubject(r schema.Relationship) string {
	return fmt.Sprintf("%s.%s -> %s.%s", r.SourceID, r.SourceAttr, r.TargetID, r.TargetAttr)
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

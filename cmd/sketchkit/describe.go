package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	sketchkit "github.com/sketchkit/core"
)

var describeCmd = &cobra.Command{
	Use:   "describe <sha>",
	Short: "Show a text diff of the serialized project (commit log and cursor) with the cursor at a commit's parent and at the commit.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		target := sketchkit.SHA(args[0])
		commit, ok := p.Log.Log.ByID(target)
		if !ok {
			return errors.Errorf("SHA %s not found", target)
		}

		before := p.Log.Cursor
		defer func() { p.Log.Cursor = before }()

		var beforeJSON string
		if commit.Parent == "" {
			// The root commit has no parent to diff against.
			beforeJSON = "null"
		} else {
			if err := p.Log.Checkout(commit.Parent); err != nil {
				return err
			}
			beforeJSON, err = p.ToJSON()
			if err != nil {
				return err
			}
		}

		if err := p.Log.Checkout(target); err != nil {
			return err
		}
		afterJSON, err := p.ToJSON()
		if err != nil {
			return err
		}

		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(beforeJSON, afterJSON, false)
		fmt.Fprintln(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	sketchkit "github.com/sketchkit/core"
)

var cherryPickCmd = &cobra.Command{
	Use:   "cherry-pick <sha>",
	Short: "Replay a historical commit's operation onto the cursor.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		newSHA, err := p.Log.CherryPick(sketchkit.SHA(args[0]))
		if err != nil {
			return err
		}
		if err := saveProject(p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cherry-picked %s as %s\n", args[0], newSHA)
		return nil
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	sketchkit "github.com/sketchkit/core"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <sha>",
	Short: "Move the cursor to an existing commit without trimming history.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if err := p.Log.Checkout(sketchkit.SHA(args[0])); err != nil {
			return err
		}
		if err := saveProject(p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked out %s\n", args[0])
		return nil
	},
}

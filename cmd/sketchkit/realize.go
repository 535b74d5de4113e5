package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	pb "gopkg.in/cheggaaa/pb.v1"
)

var (
	maxSteps     int
	showProgress bool
)

var realizeCmd = &cobra.Command{
	Use:   "realize <workbench-index>",
	Short: "Realize a workbench's sketches, splitting each at its intersections.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		var index int
		if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
			return fmt.Errorf("invalid workbench index %q: %w", args[0], err)
		}

		var bar *pb.ProgressBar
		if showProgress {
			// Purely cosmetic: the split scheduler itself never observes
			// this bar, matching the core's synchronous, non-suspending
			// design (spec.md §5).
			bar = pb.StartNew(1)
			defer bar.FinishPrint("realize complete")
		}

		realization, err := p.GetRealization(index, maxSteps)
		if bar != nil {
			bar.Increment()
		}
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(struct {
			WorkbenchIndex int
			SketchCount    int
			ExtrusionCount int
		}{
			WorkbenchIndex: realization.WorkbenchIndex,
			SketchCount:    len(realization.Sketches),
			ExtrusionCount: len(realization.Extrusions),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	realizeCmd.Flags().IntVar(&maxSteps, "max-steps", 1<<30, "maximum history steps of the workbench to realize")
	realizeCmd.Flags().BoolVar(&showProgress, "progress", false, "show a cosmetic progress bar")
}

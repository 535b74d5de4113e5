package main

import (
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/spf13/cobra"

	sketchkit "github.com/sketchkit/core"
)

const logLineTemplate = `{{repeat .Depth "  "}}* {{trunc 10 (toString .SHA)}} {{.Kind}}
`

var showDot bool

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the commit DAG as an indented tree, git-log style.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		if showDot {
			fmt.Fprintln(cmd.OutOrStdout(), p.Log.Dot("sketchkit"))
			return nil
		}

		tmpl, err := template.New("logline").Funcs(sprig.TxtFuncMap()).Parse(logLineTemplate)
		if err != nil {
			return err
		}

		children := map[sketchkit.SHA][]sketchkit.SHA{}
		for _, node := range p.Log.ToTree() {
			children[node.SHA] = node.Children
		}
		kindBySHA := map[sketchkit.SHA]sketchkit.Kind{}
		for _, c := range p.Log.Log.All() {
			kindBySHA[c.ID] = c.Operation.Kind
		}

		var walk func(sha sketchkit.SHA, depth int) error
		walk = func(sha sketchkit.SHA, depth int) error {
			if err := tmpl.Execute(os.Stdout, struct {
				SHA   sketchkit.SHA
				Kind  sketchkit.Kind
				Depth int
			}{sha, kindBySHA[sha], depth}); err != nil {
				return err
			}
			for _, child := range children[sha] {
				if err := walk(child, depth+1); err != nil {
					return err
				}
			}
			return nil
		}

		for _, root := range p.Log.Roots() {
			if err := walk(root, 0); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	logCmd.Flags().BoolVar(&showDot, "dot", false, "print the commit DAG in Graphviz DOT format instead of a tree")
}

package main

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/sketchkit/core/internal/corelog"

	sketchkit "github.com/sketchkit/core"
)

var (
	projectPath string
	logger      = corelog.New()
)

var rootCmd = &cobra.Command{
	Use:   "sketchkit",
	Short: "Inspect and replay a parametric sketch project's operation log.",
	Long: `sketchkit loads a project serialized by Project.ToJSON and lets you walk,
branch and realize its commit history from the command line.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectPath, "project", "", "path to a project JSON file (required)")
	rootCmd.AddCommand(logCmd, checkoutCmd, cherryPickCmd, realizeCmd, describeCmd)
}

func loadProject() (*sketchkit.Project, error) {
	if projectPath == "" {
		return nil, errors.New("--project is required")
	}
	data, err := ioutil.ReadFile(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading project file")
	}
	p, err := sketchkit.FromJSON(string(data), logger)
	if err != nil {
		return nil, errors.Wrap(err, "parsing project file")
	}
	return p, nil
}

func saveProject(p *sketchkit.Project) error {
	text, err := p.ToJSON()
	if err != nil {
		return errors.Wrap(err, "serializing project")
	}
	if err := ioutil.WriteFile(projectPath, []byte(text), 0644); err != nil {
		return errors.Wrap(err, "writing project file")
	}
	return nil
}

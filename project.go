// Package sketchkit is the host-facing API over the sketch engine and
// operation log: a Project wraps an EvolutionLog and replays it into a
// tree of workbenches on demand.
package sketchkit

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/oplog"
	"github.com/sketchkit/core/internal/project"
)

// Workbench is an ordered history of modeling steps.
type Workbench = project.Workbench

// Step is one entry in a workbench's ordered history.
type Step = project.Step

// StepKind tags which fields of a Step are meaningful.
type StepKind = project.StepKind

const (
	StepKindPlane     = project.StepKindPlane
	StepKindSketch    = project.StepKindSketch
	StepKindExtrusion = project.StepKindExtrusion
)

// Realization is the set of artifacts computed from a workbench's steps.
type Realization = project.Realization

// SketchRealization is one sketch step's realized (split) geometry.
type SketchRealization = project.SketchRealization

// MessageResult is the success/failure tag SendMessage returns.
type MessageResult struct {
	OK    bool
	Error string
}

// Project is the host-facing entry point: an EvolutionLog plus a cached
// replay of its current cursor.
type Project struct {
	Log *oplog.EvolutionLog

	logger corelog.Logger
	cache  *project.Project
}

// NewProject returns a Project with name, ready to accumulate operations.
func NewProject(name string, logger corelog.Logger) *Project {
	p := &Project{Log: oplog.NewEvolutionLog(logger), logger: logger}
	p.Log.Append(Operation{Kind: KindCreateProject, Nonce: name})
	p.Log.Append(Operation{Kind: KindSetProjectName, Name: name})
	p.invalidate()
	return p
}

func (p *Project) invalidate() { p.cache = nil }

func (p *Project) replay() (*project.Project, error) {
	if p.cache != nil {
		return p.cache, nil
	}
	state, err := project.Replay(p.Log, p.logger)
	if err != nil {
		return nil, err
	}
	p.cache = state
	return state, nil
}

// Name returns the project's current name, replaying if necessary.
func (p *Project) Name() (string, error) {
	state, err := p.replay()
	if err != nil {
		return "", err
	}
	return state.Name, nil
}

// SetName appends a SetProjectName operation and advances the cursor.
func (p *Project) SetName(name string) {
	p.Log.Append(Operation{Kind: KindSetProjectName, Name: name})
	p.invalidate()
}

// GetRealization realizes up to maxSteps history steps of the named
// workbench.
func (p *Project) GetRealization(workbenchIndex, maxSteps int) (*Realization, error) {
	state, err := p.replay()
	if err != nil {
		return nil, errors.Wrap(err, "get_realization")
	}
	r, err := project.BuildRealization(state, workbenchIndex, maxSteps, p.logger)
	if err != nil {
		return nil, errors.Wrap(err, "get_realization")
	}
	return r, nil
}

// GetWorkbench clones the workbench at index.
func (p *Project) GetWorkbench(index int) (*Workbench, error) {
	state, err := p.replay()
	if err != nil {
		return nil, errors.Wrap(err, "get_workbench")
	}
	if index < 0 || index >= len(state.Workbenches) {
		return nil, errors.Errorf("get_workbench: index %d out of range (project has %d workbenches)", index, len(state.Workbenches))
	}
	return state.Workbenches[index].Clone(), nil
}

// SendMessage appends op at the cursor and attempts to replay the
// resulting chain, reporting success or failure. The OpLog is never
// rolled back on failure (spec.md §7); the caller may Checkout back to
// discard the failed append.
func (p *Project) SendMessage(op Operation) MessageResult {
	p.Log.Append(op)
	p.invalidate()
	if _, err := p.replay(); err != nil {
		return MessageResult{OK: false, Error: err.Error()}
	}
	return MessageResult{OK: true}
}

type persistedProject struct {
	Cursor  SHA            `json:"cursor"`
	Commits []oplog.Commit `json:"commits"`
}

// ToJSON serializes the project's full commit log as an opaque,
// round-trippable text blob (spec.md §6).
func (p *Project) ToJSON() (string, error) {
	data, err := json.Marshal(persistedProject{
		Cursor:  p.Log.Cursor,
		Commits: p.Log.Log.All(),
	})
	if err != nil {
		return "", errors.Wrap(err, "to_json")
	}
	return string(data), nil
}

// FromJSON reconstructs a Project from a blob produced by ToJSON.
func FromJSON(text string, logger corelog.Logger) (*Project, error) {
	var persisted persistedProject
	if err := json.Unmarshal([]byte(text), &persisted); err != nil {
		return nil, errors.Wrap(err, "from_json")
	}
	return &Project{
		Log:    oplog.LoadEvolutionLog(persisted.Commits, persisted.Cursor, logger),
		logger: logger,
	}, nil
}

// Package project folds a commit chain from the root to an EvolutionLog's
// cursor into a Project tree: workbenches, each holding an ordered list of
// plane/sketch/extrusion steps, resolved through lookup tables keyed by
// the commit SHA that created each entity and a transitive alias table
// for cherry-picked create-operations.
package project

import (
	"github.com/pkg/errors"
	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/geom"
	"github.com/sketchkit/core/internal/oplog"
	"github.com/sketchkit/core/internal/sketch"
)

// StepKind tags which fields of a Step are meaningful.
type StepKind int

const (
	StepKindPlane StepKind = iota
	StepKindSketch
	StepKindExtrusion
)

// Step is one entry in a workbench's ordered history.
type Step struct {
	Kind StepKind
	SHA  oplog.SHA
	Name string

	// Plane steps.
	Plane oplog.Plane

	// Sketch steps.
	Sketch   *sketch.Sketch
	PlaneSHA oplog.SHA
	Handles  []geom.PointID
	Faces    []oplog.Face

	// Extrusion steps.
	ExtrusionSketchSHA oplog.SHA
	ExtrusionHandles   []int
	Depth              float64
}

// Workbench is an ordered history of modeling steps.
type Workbench struct {
	SHA   oplog.SHA
	Name  string
	Steps []*Step
}

// Project is the replayed project tree.
type Project struct {
	Name        string
	Workbenches []*Workbench
}

type planeRef struct {
	workbenchIndex int
	step           *Step
}

type sketchRef struct {
	workbenchIndex int
	step           *Step
}

// Replay folds e's commit chain, from the root to the cursor, into a
// fresh Project. It is the sole consumer of the Alias pre-pass table.
func Replay(e *oplog.EvolutionLog, logger corelog.Logger) (*Project, error) {
	chain, err := ancestryChain(e)
	if err != nil {
		return nil, err
	}

	aliases := buildAliasTable(chain)
	resolve := func(sha oplog.SHA) oplog.SHA { return resolveAlias(aliases, sha) }

	proj := &Project{}
	workbenches := map[oplog.SHA]int{}
	planes := map[oplog.SHA]planeRef{}
	sketches := map[oplog.SHA]sketchRef{}
	extrusions := map[oplog.SHA]*Step{}

	for _, c := range chain {
		op := c.Operation
		switch op.Kind {
		case oplog.KindCreate, oplog.KindDescribe, oplog.KindAlias, oplog.KindFinalizeSketch:
			// no replay effect: Create/Describe are informational, Alias is
			// consumed by the pre-pass above, FinalizeSketch is a marker
			// (spec.md §9 open question 2 — face discovery is a separate pass).

		case oplog.KindCreateProject:
			// project already exists; nonce carries no replay state.

		case oplog.KindSetProjectName:
			proj.Name = op.Name

		case oplog.KindCreateWorkbench:
			wb := &Workbench{SHA: c.ID}
			proj.Workbenches = append(proj.Workbenches, wb)
			workbenches[c.ID] = len(proj.Workbenches) - 1

		case oplog.KindSetWorkbenchName:
			idx, ok := workbenches[resolve(op.WorkbenchID)]
			if !ok {
				return nil, invariantViolation(logger, "SetWorkbenchName references unknown workbench %s", op.WorkbenchID)
			}
			proj.Workbenches[idx].Name = op.Name

		case oplog.KindCreatePlane:
			idx, ok := workbenches[resolve(op.WorkbenchID)]
			if !ok {
				return nil, invariantViolation(logger, "CreatePlane references unknown workbench %s", op.WorkbenchID)
			}
			step := &Step{Kind: StepKindPlane, SHA: c.ID}
			proj.Workbenches[idx].Steps = append(proj.Workbenches[idx].Steps, step)
			planes[c.ID] = planeRef{workbenchIndex: idx, step: step}

		case oplog.KindSetPlaneName:
			ref, ok := planes[resolve(op.PlaneID)]
			if !ok {
				return nil, invariantViolation(logger, "SetPlaneName references unknown plane %s", op.PlaneID)
			}
			ref.step.Name = op.Name

		case oplog.KindSetPlane:
			ref, ok := planes[resolve(op.PlaneID)]
			if !ok {
				return nil, invariantViolation(logger, "SetPlane references unknown plane %s", op.PlaneID)
			}
			ref.step.Plane = op.Plane

		case oplog.KindCreateSketch:
			idx, ok := workbenches[resolve(op.WorkbenchID)]
			if !ok {
				return nil, invariantViolation(logger, "CreateSketch references unknown workbench %s", op.WorkbenchID)
			}
			step := &Step{Kind: StepKindSketch, SHA: c.ID, Sketch: sketch.New()}
			proj.Workbenches[idx].Steps = append(proj.Workbenches[idx].Steps, step)
			sketches[c.ID] = sketchRef{workbenchIndex: idx, step: step}

		case oplog.KindSetSketchName:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "SetSketchName references unknown sketch %s", op.SketchID)
			}
			ref.step.Name = op.Name

		case oplog.KindSetSketchPlane:
			sref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "SetSketchPlane references unknown sketch %s", op.SketchID)
			}
			pref, ok := planes[resolve(op.PlaneID)]
			if !ok {
				return nil, invariantViolation(logger, "SetSketchPlane references unknown plane %s", op.PlaneID)
			}
			if sref.workbenchIndex != pref.workbenchIndex {
				return nil, invariantViolation(logger, "SetSketchPlane: sketch %s and plane %s belong to different workbenches", op.SketchID, op.PlaneID)
			}
			sref.step.PlaneSHA = resolve(op.PlaneID)

		case oplog.KindAddSketchRectangle:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "AddSketchRectangle references unknown sketch %s", op.SketchID)
			}
			ref.step.Sketch.AddRectangle(op.X, op.Y, op.Width, op.Height)

		case oplog.KindAddSketchCircle:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "AddSketchCircle references unknown sketch %s", op.SketchID)
			}
			ref.step.Sketch.AddCircleAt(op.X, op.Y, op.Radius)

		case oplog.KindAddSketchLine:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "AddSketchLine references unknown sketch %s", op.SketchID)
			}
			start := ref.step.Sketch.AddPoint(geom.Point{X: op.Start.X, Y: op.Start.Y})
			end := ref.step.Sketch.AddPoint(geom.Point{X: op.End.X, Y: op.End.Y})
			ref.step.Sketch.AddLine(geom.Line{Start: start, End: end})

		case oplog.KindAddSketchHandle:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "AddSketchHandle references unknown sketch %s", op.SketchID)
			}
			id := ref.step.Sketch.AddPoint(geom.Point{X: op.Position.X, Y: op.Position.Y})
			ref.step.Handles = append(ref.step.Handles, id)

		case oplog.KindCreateFace:
			ref, ok := sketches[resolve(op.SketchID)]
			if !ok {
				return nil, invariantViolation(logger, "CreateFace references unknown sketch %s", op.SketchID)
			}
			ref.step.Faces = append(ref.step.Faces, op.Face)

		case oplog.KindCreateExtrusion:
			idx, ok := workbenches[resolve(op.WorkbenchID)]
			if !ok {
				return nil, invariantViolation(logger, "CreateExtrusion references unknown workbench %s", op.WorkbenchID)
			}
			step := &Step{Kind: StepKindExtrusion, SHA: c.ID}
			proj.Workbenches[idx].Steps = append(proj.Workbenches[idx].Steps, step)
			extrusions[c.ID] = step

		case oplog.KindSetExtrusionName:
			step, ok := extrusions[resolve(op.ExtrusionID)]
			if !ok {
				return nil, invariantViolation(logger, "SetExtrusionName references unknown extrusion %s", op.ExtrusionID)
			}
			step.Name = op.Name

		case oplog.KindSetExtrusionSketch:
			step, ok := extrusions[resolve(op.ExtrusionID)]
			if !ok {
				return nil, invariantViolation(logger, "SetExtrusionSketch references unknown extrusion %s", op.ExtrusionID)
			}
			step.ExtrusionSketchSHA = resolve(op.SketchID)

		case oplog.KindSetExtrusionHandles:
			step, ok := extrusions[resolve(op.ExtrusionID)]
			if !ok {
				return nil, invariantViolation(logger, "SetExtrusionHandles references unknown extrusion %s", op.ExtrusionID)
			}
			step.ExtrusionHandles = op.Handles

		case oplog.KindSetExtrusionDepth:
			step, ok := extrusions[resolve(op.ExtrusionID)]
			if !ok {
				return nil, invariantViolation(logger, "SetExtrusionDepth references unknown extrusion %s", op.ExtrusionID)
			}
			step.Depth = op.Depth

		default:
			// unknown/future operations are ignored, per spec.md §4.5.
		}
	}

	return proj, nil
}

func invariantViolation(logger corelog.Logger, format string, args ...interface{}) error {
	err := errors.Errorf(format, args...)
	if logger != nil {
		logger.Criticalf("replay invariant violation: %s", err)
	}
	return err
}

// ancestryChain walks from e's cursor to the root via Parent and returns
// the commits in chronological (root-first) order.
func ancestryChain(e *oplog.EvolutionLog) ([]oplogCommit, error) {
	var reversed []oplogCommit
	sha := e.Cursor
	for sha != "" {
		c, ok := e.Log.ByID(sha)
		if !ok {
			return nil, errors.Errorf("replay invariant violation: commit %s not found", sha)
		}
		reversed = append(reversed, oplogCommit(c))
		sha = c.Parent
	}
	chain := make([]oplogCommit, len(reversed))
	for i, c := range reversed {
		chain[len(reversed)-1-i] = c
	}
	return chain, nil
}

// oplogCommit is a local alias kept so ancestryChain's signature doesn't
// need to name oplog.Commit twice; both are the same underlying type.
type oplogCommit = oplog.Commit

// buildAliasTable scans the chain for Alias operations and returns the
// original->new map, not yet resolved transitively (resolveAlias does
// that at lookup time).
func buildAliasTable(chain []oplog.Commit) map[oplog.SHA]oplog.SHA {
	table := map[oplog.SHA]oplog.SHA{}
	for _, c := range chain {
		if c.Operation.Kind == oplog.KindAlias {
			table[c.Operation.Original] = c.Operation.New
		}
	}
	return table
}

// resolveAlias follows the alias chain original -> ... -> final. A guard
// against pathological cycles returns the last SHA seen rather than
// looping forever.
func resolveAlias(table map[oplog.SHA]oplog.SHA, sha oplog.SHA) oplog.SHA {
	seen := map[oplog.SHA]struct{}{}
	for {
		next, ok := table[sha]
		if !ok {
			return sha
		}
		if _, visited := seen[sha]; visited {
			return sha
		}
		seen[sha] = struct{}{}
		sha = next
	}
}

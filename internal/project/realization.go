package project

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/geom"
	"github.com/sketchkit/core/internal/oplog"
	"github.com/sketchkit/core/internal/sketch"
)

// SketchRealization is one sketch step's realized geometry: the sketch as
// the user built it, and its split (planar-subdivided) form.
type SketchRealization struct {
	Name    string
	Unsplit *sketch.Sketch
	Split   *sketch.Sketch
	Faces   []oplog.Face
}

// Realization is the set of artifacts computed from a workbench's steps
// up to a caller-supplied step limit. Solid-body extrusion is an
// external collaborator per spec.md §1; this module records extrusion
// metadata but never fabricates real B-rep geometry for it.
type Realization struct {
	WorkbenchIndex int
	Sketches       map[string]*SketchRealization
	Extrusions     []*Step
}

// BuildRealization realizes up to maxSteps steps of workbench
// workbenchIndex: every sketch step encountered is split; extrusion
// steps are recorded as metadata only.
func BuildRealization(p *Project, workbenchIndex, maxSteps int, logger corelog.Logger) (*Realization, error) {
	if workbenchIndex < 0 || workbenchIndex >= len(p.Workbenches) {
		return nil, errors.Errorf("workbench index %d out of range (project has %d workbenches)", workbenchIndex, len(p.Workbenches))
	}
	wb := p.Workbenches[workbenchIndex]

	steps := wb.Steps
	if maxSteps >= 0 && maxSteps < len(steps) {
		steps = steps[:maxSteps]
	}

	r := &Realization{
		WorkbenchIndex: workbenchIndex,
		Sketches:       map[string]*SketchRealization{},
	}

	for i, step := range steps {
		switch step.Kind {
		case StepKindSketch:
			name := step.Name
			if name == "" {
				name = syntheticSketchName(i)
			}
			r.Sketches[name] = &SketchRealization{
				Name:    name,
				Unsplit: step.Sketch,
				Split:   step.Sketch.SplitIntersections(logger),
				Faces:   step.Faces,
			}
		case StepKindExtrusion:
			r.Extrusions = append(r.Extrusions, step)
		}
	}

	return r, nil
}

func syntheticSketchName(index int) string {
	return "Sketch-" + strconv.Itoa(index)
}

// SolidToOBJ would export a solid body's mesh. Solid-body realization is
// explicitly out of this module's core scope (spec.md §1): it is
// recorded as extrusion metadata only, so no mesh can be produced.
func (r *Realization) SolidToOBJ(solidID string, tolerance float64) (string, error) {
	return "", errors.Errorf("solid body realization for %q is outside this module's scope; no B-rep geometry is computed", solidID)
}

// SolidToSTEP would export a solid body's B-rep. See SolidToOBJ.
func (r *Realization) SolidToSTEP(solidID string) (string, error) {
	return "", errors.Errorf("solid body realization for %q is outside this module's scope; no B-rep geometry is computed", solidID)
}

// Clone returns a deep copy of a Workbench, matching the "clones the
// workbench" contract of the Project.GetWorkbench API.
func (w *Workbench) Clone() *Workbench {
	clone := &Workbench{SHA: w.SHA, Name: w.Name}
	for _, s := range w.Steps {
		cp := *s
		if s.Sketch != nil {
			cp.Sketch = s.Sketch.Clone()
		}
		cp.Handles = append([]geom.PointID(nil), s.Handles...)
		cp.Faces = append([]oplog.Face(nil), s.Faces...)
		clone.Steps = append(clone.Steps, &cp)
	}
	return clone
}

package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sketchkit/core/internal/oplog"
)

func TestReplayBuildsWorkbenchPlaneAndSketch(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	e.Append(oplog.Operation{Kind: oplog.KindCreateProject, Nonce: "p1"})
	e.Append(oplog.Operation{Kind: oplog.KindSetProjectName, Name: "My Project"})
	wbSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "w1"})
	e.Append(oplog.Operation{Kind: oplog.KindSetWorkbenchName, WorkbenchID: wbSHA, Name: "Main"})
	planeSHA := e.Append(oplog.Operation{Kind: oplog.KindCreatePlane, Nonce: "pl1", WorkbenchID: wbSHA})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})
	e.Append(oplog.Operation{Kind: oplog.KindSetSketchPlane, SketchID: sketchSHA, PlaneID: planeSHA})
	e.Append(oplog.Operation{Kind: oplog.KindAddSketchRectangle, SketchID: sketchSHA, X: 0, Y: 0, Width: 4, Height: 4})

	proj, err := Replay(e, nil)
	require.NoError(t, err)
	assert.Equal(t, "My Project", proj.Name)
	require.Len(t, proj.Workbenches, 1)
	wb := proj.Workbenches[0]
	assert.Equal(t, "Main", wb.Name)
	require.Len(t, wb.Steps, 2)
	assert.Equal(t, StepKindPlane, wb.Steps[0].Kind)
	assert.Equal(t, StepKindSketch, wb.Steps[1].Kind)
	assert.Equal(t, planeSHA, wb.Steps[1].PlaneSHA)
	assert.Len(t, wb.Steps[1].Sketch.Lines, 4)
}

func TestReplayRejectsSketchPlaneMismatchedWorkbench(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	wbA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "a"})
	wbB := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "b"})
	planeSHA := e.Append(oplog.Operation{Kind: oplog.KindCreatePlane, Nonce: "pl", WorkbenchID: wbA})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s", WorkbenchID: wbB})
	e.Append(oplog.Operation{Kind: oplog.KindSetSketchPlane, SketchID: sketchSHA, PlaneID: planeSHA})

	_, err := Replay(e, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "different workbenches")
}

func TestReplayResolvesAliasAfterCherryPick(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	wbSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "w1"})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})

	require.NoError(t, e.Checkout(wbSHA))
	newSketchSHA, err := e.CherryPick(sketchSHA)
	require.NoError(t, err)

	// An operation naming the ORIGINAL sketch sha must resolve to the
	// cherry-picked copy via the Alias companion.
	e.Append(oplog.Operation{Kind: oplog.KindAddSketchCircle, SketchID: sketchSHA, X: 0, Y: 0, Radius: 1})

	proj, err := Replay(e, nil)
	require.NoError(t, err)
	wb := proj.Workbenches[0]

	var found *Step
	for _, s := range wb.Steps {
		if s.Kind == StepKindSketch && s.SHA == newSketchSHA {
			found = s
		}
	}
	require.NotNil(t, found)
	assert.Len(t, found.Sketch.Circles, 1)
}

func TestReplayIgnoresFinalizeSketch(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	wbSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "w1"})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})
	e.Append(oplog.Operation{Kind: oplog.KindFinalizeSketch, WorkbenchID: wbSHA, SketchID: sketchSHA})

	proj, err := Replay(e, nil)
	require.NoError(t, err)
	assert.Len(t, proj.Workbenches[0].Steps, 1)
}

func TestBuildRealizationSplitsSketchSteps(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	wbSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "w1"})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})
	e.Append(oplog.Operation{Kind: oplog.KindAddSketchCircle, SketchID: sketchSHA, X: 0, Y: 0, Radius: 1})
	e.Append(oplog.Operation{Kind: oplog.KindAddSketchCircle, SketchID: sketchSHA, X: 1, Y: 0, Radius: 1})

	proj, err := Replay(e, nil)
	require.NoError(t, err)

	realization, err := BuildRealization(proj, 0, 1000, nil)
	require.NoError(t, err)
	require.Contains(t, realization.Sketches, "Sketch-0")
	sr := realization.Sketches["Sketch-0"]
	assert.Len(t, sr.Unsplit.Circles, 2)
	assert.Empty(t, sr.Split.Circles)
	assert.Len(t, sr.Split.Arcs, 4)
}

func TestBuildRealizationRejectsOutOfRangeIndex(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	proj, err := Replay(e, nil)
	require.NoError(t, err)

	_, err = BuildRealization(proj, 3, 10, nil)
	assert.Error(t, err)
}

func TestWorkbenchCloneIsIndependent(t *testing.T) {
	e := oplog.NewEvolutionLog(nil)
	wbSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateWorkbench, Nonce: "w1"})
	sketchSHA := e.Append(oplog.Operation{Kind: oplog.KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})
	e.Append(oplog.Operation{Kind: oplog.KindAddSketchCircle, SketchID: sketchSHA, X: 0, Y: 0, Radius: 1})

	proj, err := Replay(e, nil)
	require.NoError(t, err)

	clone := proj.Workbenches[0].Clone()
	clone.Steps[0].Sketch.AddCircleAt(9, 9, 1)

	assert.Len(t, proj.Workbenches[0].Steps[0].Sketch.Circles, 1)
	assert.Len(t, clone.Steps[0].Sketch.Circles, 2)
}

func TestSolidExportsReportOutOfScopeError(t *testing.T) {
	r := &Realization{}
	_, err := r.SolidToOBJ("solid-1", 0.1)
	assert.Error(t, err)
	_, err = r.SolidToSTEP("solid-1")
	assert.Error(t, err)
}

package sketchkit

import "github.com/sketchkit/core/internal/oplog"

// Operation is every user action the OpLog can record.
type Operation = oplog.Operation

// Point2 is a plain 2D coordinate pair carried inline by operations that
// reference a position rather than an owned point id.
type Point2 = oplog.Point2

// Plane is an opaque stand-in for plane algebra, an external collaborator
// per spec.md §1.
type Plane = oplog.Plane

// Face is an opaque loop of handle ids, consumed by a downstream
// face-finder.
type Face = oplog.Face

// SHA is the hex encoding of a SHA-256 digest used as commit identity.
type SHA = oplog.SHA

// Kind tags which fields of an Operation are meaningful.
type Kind = oplog.Kind

const (
	KindCreate              = oplog.KindCreate
	KindDescribe            = oplog.KindDescribe
	KindAlias               = oplog.KindAlias
	KindCreateProject       = oplog.KindCreateProject
	KindSetProjectName      = oplog.KindSetProjectName
	KindCreateWorkbench     = oplog.KindCreateWorkbench
	KindSetWorkbenchName    = oplog.KindSetWorkbenchName
	KindCreatePlane         = oplog.KindCreatePlane
	KindSetPlaneName        = oplog.KindSetPlaneName
	KindSetPlane            = oplog.KindSetPlane
	KindCreateSketch        = oplog.KindCreateSketch
	KindSetSketchName       = oplog.KindSetSketchName
	KindSetSketchPlane      = oplog.KindSetSketchPlane
	KindAddSketchRectangle  = oplog.KindAddSketchRectangle
	KindAddSketchCircle     = oplog.KindAddSketchCircle
	KindAddSketchLine       = oplog.KindAddSketchLine
	KindAddSketchHandle     = oplog.KindAddSketchHandle
	KindFinalizeSketch      = oplog.KindFinalizeSketch
	KindCreateFace          = oplog.KindCreateFace
	KindCreateExtrusion     = oplog.KindCreateExtrusion
	KindSetExtrusionName    = oplog.KindSetExtrusionName
	KindSetExtrusionSketch  = oplog.KindSetExtrusionSketch
	KindSetExtrusionHandles = oplog.KindSetExtrusionHandles
	KindSetExtrusionDepth   = oplog.KindSetExtrusionDepth
)

// ContentHash computes an operation's SHA-256("cadmium" ++
// canonical-text(op)) content hash.
func ContentHash(op Operation) SHA { return oplog.ContentHash(op) }

// CommitNode is a transient view of the commit DAG's adjacency.
type CommitNode = oplog.CommitNode

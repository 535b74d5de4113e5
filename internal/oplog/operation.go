package oplog

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags which fields of an Operation are meaningful. Operation is a
// flat struct rather than an interface hierarchy so that content-hashing
// and replay dispatch can both switch on a single tag, matching the
// tagged-variant discipline the rest of this module follows.
type Kind int

const (
	KindCreate Kind = iota
	KindDescribe
	KindAlias
	KindCreateProject
	KindSetProjectName
	KindCreateWorkbench
	KindSetWorkbenchName
	KindCreatePlane
	KindSetPlaneName
	KindSetPlane
	KindCreateSketch
	KindSetSketchName
	KindSetSketchPlane
	KindAddSketchRectangle
	KindAddSketchCircle
	KindAddSketchLine
	KindAddSketchHandle
	KindFinalizeSketch
	KindCreateFace
	KindCreateExtrusion
	KindSetExtrusionName
	KindSetExtrusionSketch
	KindSetExtrusionHandles
	KindSetExtrusionDepth
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "Create"
	case KindDescribe:
		return "Describe"
	case KindAlias:
		return "Alias"
	case KindCreateProject:
		return "CreateProject"
	case KindSetProjectName:
		return "SetProjectName"
	case KindCreateWorkbench:
		return "CreateWorkbench"
	case KindSetWorkbenchName:
		return "SetWorkbenchName"
	case KindCreatePlane:
		return "CreatePlane"
	case KindSetPlaneName:
		return "SetPlaneName"
	case KindSetPlane:
		return "SetPlane"
	case KindCreateSketch:
		return "CreateSketch"
	case KindSetSketchName:
		return "SetSketchName"
	case KindSetSketchPlane:
		return "SetSketchPlane"
	case KindAddSketchRectangle:
		return "AddSketchRectangle"
	case KindAddSketchCircle:
		return "AddSketchCircle"
	case KindAddSketchLine:
		return "AddSketchLine"
	case KindAddSketchHandle:
		return "AddSketchHandle"
	case KindFinalizeSketch:
		return "FinalizeSketch"
	case KindCreateFace:
		return "CreateFace"
	case KindCreateExtrusion:
		return "CreateExtrusion"
	case KindSetExtrusionName:
		return "SetExtrusionName"
	case KindSetExtrusionSketch:
		return "SetExtrusionSketch"
	case KindSetExtrusionHandles:
		return "SetExtrusionHandles"
	case KindSetExtrusionDepth:
		return "SetExtrusionDepth"
	default:
		return "Unknown"
	}
}

// Point2 is a plain 2D coordinate pair, used by operations that carry
// sketch-local positions inline rather than by point id (the position
// only becomes a real owned Point once replayed into a sketch).
type Point2 struct {
	X, Y float64
}

// Plane is an opaque stand-in for plane algebra, which is an external
// collaborator per spec.md §1: this module only carries the value
// through SetPlane so it can be hashed, stored and replayed, never
// transforms it.
type Plane struct {
	OriginX, OriginY, OriginZ float64
	NormalX, NormalY, NormalZ float64
}

// Face is an opaque loop of handle ids, the raw material a downstream
// face-finder and extrusion stage would consume; this module does not
// interpret it.
type Face struct {
	Handles []int
}

// Operation is every user action the OpLog can record. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Operation struct {
	Kind Kind

	Nonce string

	Description string
	Commit      SHA

	Original SHA
	New      SHA

	ProjectID SHA
	Name      string

	WorkbenchID SHA

	PlaneID SHA
	Plane   Plane

	SketchID SHA
	Start    Point2
	End      Point2
	Position Point2
	X, Y     float64
	Width    float64
	Height   float64
	Radius   float64

	Face Face

	ExtrusionID SHA
	Handles     []int
	Depth       float64
}

// IsCreate reports whether op introduces a new entity that would need an
// Alias companion if cherry-picked onto a different branch.
func (op Operation) IsCreate() bool {
	switch op.Kind {
	case KindCreatePlane, KindCreateSketch, KindCreateExtrusion:
		return true
	default:
		return false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatPoint(p Point2) string {
	return fmt.Sprintf("(%s, %s)", formatFloat(p.X), formatFloat(p.Y))
}

func formatPlane(p Plane) string {
	return fmt.Sprintf("Plane{origin: (%s, %s, %s), normal: (%s, %s, %s)}",
		formatFloat(p.OriginX), formatFloat(p.OriginY), formatFloat(p.OriginZ),
		formatFloat(p.NormalX), formatFloat(p.NormalY), formatFloat(p.NormalZ))
}

func formatFace(f Face) string {
	parts := make([]string, len(f.Handles))
	for i, h := range f.Handles {
		parts[i] = strconv.Itoa(h)
	}
	return "Face{[" + strings.Join(parts, ", ") + "]}"
}

func formatHandles(h []int) string {
	parts := make([]string, len(h))
	for i, v := range h {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CanonicalText encodes op per spec.md §6: fields in declaration order,
// separated by "-", using each field's natural printable form.
func (op Operation) CanonicalText() string {
	field := func(parts ...string) string {
		return op.Kind.String() + "-" + strings.Join(parts, "-")
	}
	switch op.Kind {
	case KindCreate:
		return field(op.Nonce)
	case KindDescribe:
		return field(op.Description, string(op.Commit))
	case KindAlias:
		return field(string(op.Original), string(op.New))
	case KindCreateProject:
		return field(op.Nonce)
	case KindSetProjectName:
		return field(string(op.ProjectID), op.Name)
	case KindCreateWorkbench:
		return field(op.Nonce)
	case KindSetWorkbenchName:
		return field(string(op.WorkbenchID), op.Name)
	case KindCreatePlane:
		return field(op.Nonce, string(op.WorkbenchID))
	case KindSetPlaneName:
		return field(string(op.PlaneID), op.Name)
	case KindSetPlane:
		return field(string(op.PlaneID), formatPlane(op.Plane))
	case KindCreateSketch:
		return field(op.Nonce, string(op.WorkbenchID))
	case KindSetSketchName:
		return field(string(op.SketchID), op.Name)
	case KindSetSketchPlane:
		return field(string(op.SketchID), string(op.PlaneID))
	case KindAddSketchRectangle:
		return field(string(op.SketchID), formatFloat(op.X), formatFloat(op.Y), formatFloat(op.Width), formatFloat(op.Height))
	case KindAddSketchCircle:
		return field(string(op.SketchID), formatFloat(op.X), formatFloat(op.Y), formatFloat(op.Radius))
	case KindAddSketchLine:
		return field(string(op.SketchID), formatPoint(op.Start), formatPoint(op.End))
	case KindAddSketchHandle:
		return field(string(op.SketchID), formatPoint(op.Position))
	case KindFinalizeSketch:
		return field(string(op.WorkbenchID), string(op.SketchID))
	case KindCreateFace:
		return field(string(op.WorkbenchID), string(op.SketchID), formatFace(op.Face))
	case KindCreateExtrusion:
		return field(string(op.WorkbenchID), op.Nonce)
	case KindSetExtrusionName:
		return field(string(op.ExtrusionID), op.Name)
	case KindSetExtrusionSketch:
		return field(string(op.ExtrusionID), string(op.SketchID))
	case KindSetExtrusionHandles:
		return field(string(op.ExtrusionID), formatHandles(op.Handles))
	case KindSetExtrusionDepth:
		return field(string(op.ExtrusionID), formatFloat(op.Depth))
	default:
		return field()
	}
}

package gekko

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoCube
	GizmoSphere
	GizmoRect   // Wireframe rectangle
	GizmoCircle // Wireframe circle
	GizmoCone   // Arrow head, base at Position, apex at LineEnd
	GizmoQuad   // Filled square in the local XZ plane
)

// GizmoComponent allows an entity to be visualized as a 3D gizmo.
// Gizmos are rendered as wireframes, quads and cones are filled.
type GizmoComponent struct {
	Type  GizmoType
	Color [4]float32

	// Local placement, applied on top of the entity's TransformComponent.
	// For Cube, Sphere, Rect, Circle, Quad: Position is center. Scale dimensions.
	// For Line and Cone: Position is Start.
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3 // Default {1,1,1}

	// Specifics
	LineEnd mgl32.Vec3 // End point for GizmoLine, apex for GizmoCone.
	Radius  float32    // Sphere/Circle radius, Cone base radius, Line thickness, Quad half size.

	// Hidden gizmos are not drawn, picking still uses them.
	Hidden bool
}

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoCube(center mgl32.Vec3, size mgl32.Vec3, color [4]float32) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoCube,
		Position: center,
		Scale:    size,
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoSphere(center mgl32.Vec3, radius float32, color [4]float32) GizmoComponent {
	return GizmoComponent{
		Type:     GizmoSphere,
		Position: center,
		Radius:   radius,
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}

// NewGizmoFromShape builds the visual for a handle table shape.
func NewGizmoFromShape(shape gizmo.Shape, color [4]float32) GizmoComponent {
	g := GizmoComponent{
		Color:    color,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
		Radius:   shape.Radius,
	}
	switch shape.Kind {
	case gizmo.ShapeSegment:
		g.Type = GizmoLine
		g.Position = mgl32.Vec3{0, -shape.HalfLength, 0}
		g.LineEnd = mgl32.Vec3{0, shape.HalfLength, 0}
	case gizmo.ShapeCone:
		g.Type = GizmoCone
		g.LineEnd = mgl32.Vec3{0, shape.Length, 0}
	case gizmo.ShapeQuad:
		g.Type = GizmoQuad
		g.Radius = shape.HalfSize
	}
	return g
}

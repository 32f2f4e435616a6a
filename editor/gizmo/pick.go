package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PickTarget is one pickable helper shape placed in the world.
type PickTarget struct {
	Axis     AxisName
	Shape    Shape
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32 // uniform
}

// Hit tests the ray against the target and returns the ray parameter.
func (p PickTarget) Hit(ray Ray) (float32, bool) {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	dir := ray.Direction.Normalize()
	ray = Ray{Origin: ray.Origin, Direction: dir}

	switch p.Shape.Kind {
	case ShapeSegment:
		axis := p.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		half := p.Shape.HalfLength * scale
		t, s, d := ClosestPoints(ray.Origin, dir, p.Position, axis)
		if t <= 0 || s < -half || s > half || d > p.Shape.Radius*scale {
			return 0, false
		}
		return t, true
	case ShapeCone:
		// Cones are picked like a segment from base to apex.
		axis := p.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		length := p.Shape.Length * scale
		t, s, d := ClosestPoints(ray.Origin, dir, p.Position, axis)
		if t <= 0 || s < 0 || s > length || d > p.Shape.Radius*scale {
			return 0, false
		}
		return t, true
	case ShapeQuad:
		normal := p.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
		t, ok := ray.IntersectPlane(Plane{Normal: normal, Point: p.Position})
		if !ok {
			return 0, false
		}
		local := p.Rotation.Conjugate().Rotate(ray.PointAt(t).Sub(p.Position))
		half := float64(p.Shape.HalfSize * scale)
		if math.Abs(float64(local.X())) > half || math.Abs(float64(local.Z())) > half {
			return 0, false
		}
		return t, true
	}
	return 0, false
}

// Pick returns the axis of the closest target hit by the ray.
func Pick(ray Ray, targets []PickTarget) (AxisName, float32, bool) {
	best := AxisNone
	bestT := float32(math.MaxFloat32)
	for _, target := range targets {
		if t, ok := target.Hit(ray); ok && t < bestT {
			best = target.Axis
			bestT = t
		}
	}
	if best == AxisNone {
		return AxisNone, 0, false
	}
	return best, bestT, true
}

package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const parallelEpsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) PointAt(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is the set of points p with Normal·(p - Point) = 0.
type Plane struct {
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// IntersectPlane returns the ray parameter of the hit. It fails when the ray
// runs parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlane(p Plane) (float32, bool) {
	denom := r.Direction.Dot(p.Normal)
	if math.Abs(float64(denom)) < parallelEpsilon {
		return 0, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// ClosestPoints finds the closest approach between the ray ro+t*rd and the
// line ao+s*ad. It returns t, s and the distance between the two points.
// Parallel inputs return t=0, s=0 and the distance from ro to ao.
func ClosestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < parallelEpsilon {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}

// EulerToQuat converts Euler angles in degrees to a rotation composed as
// Y * X * Z, the order the handle table is authored in.
func EulerToQuat(deg mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(deg.X()), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(deg.Y()), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(deg.Z()), mgl32.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

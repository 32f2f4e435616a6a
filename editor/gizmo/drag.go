package gizmo

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMinFacing is the smallest |dot(ray, normal)| at which the default
// drag plane of a single-axis handle is still used.
const DefaultMinFacing = 0.15

// DragSession is the transient state of one translate drag.
type DragSession struct {
	Axis          AxisName
	StartPosition mgl32.Vec3 // world position of the target at drag start
	StartPoint    mgl32.Vec3 // ray/plane hit at drag start
	LastPoint     mgl32.Vec3 // most recent ray/plane hit
	Plane         Plane
	StartedAt     time.Time

	current mgl32.Vec3
}

// DragPlane picks the plane the pointer is projected on. It passes through
// anchor. Single-axis handles switch to the other plane containing the axis
// when the default one is seen nearly edge-on.
func DragPlane(axis AxisName, anchor mgl32.Vec3, viewDir mgl32.Vec3, minFacing float32) Plane {
	n := axis.PlaneNormal()
	if !axis.IsPlane() {
		dir := viewDir.Normalize()
		if float32(math.Abs(float64(dir.Dot(n)))) < minFacing {
			alt := axis.alternateNormal()
			if math.Abs(float64(dir.Dot(alt))) > math.Abs(float64(dir.Dot(n))) {
				n = alt
			}
		}
	}
	return Plane{Normal: n, Point: anchor}
}

// BeginDrag starts a session for axis at the target's world position.
func BeginDrag(axis AxisName, startPosition mgl32.Vec3, ray Ray, minFacing float32, now time.Time) (*DragSession, error) {
	if !axis.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, axis)
	}
	plane := DragPlane(axis, startPosition, ray.Direction, minFacing)
	t, ok := ray.IntersectPlane(plane)
	if !ok {
		return nil, ErrNoIntersection
	}
	hit := ray.PointAt(t)
	return &DragSession{
		Axis:          axis,
		StartPosition: startPosition,
		StartPoint:    hit,
		LastPoint:     hit,
		Plane:         plane,
		StartedAt:     now,
		current:       startPosition,
	}, nil
}

// Update projects ray on the drag plane and returns the new world position
// for the target. Components outside the axis mask keep the values of
// current. When the ray misses the plane the previous result is returned
// with ok=false.
func (s *DragSession) Update(ray Ray, current mgl32.Vec3) (mgl32.Vec3, bool) {
	t, ok := ray.IntersectPlane(s.Plane)
	if !ok {
		return s.current, false
	}
	s.LastPoint = ray.PointAt(t)
	s.current = s.ApplyDelta(current, s.Delta())
	return s.current, true
}

// Delta is the displacement of the pointer on the drag plane since the start.
func (s *DragSession) Delta() mgl32.Vec3 {
	return s.LastPoint.Sub(s.StartPoint)
}

// ApplyDelta writes StartPosition+delta into the masked components of out.
func (s *DragSession) ApplyDelta(out mgl32.Vec3, delta mgl32.Vec3) mgl32.Vec3 {
	for _, i := range s.Axis.Mask() {
		out[i] = s.StartPosition[i] + delta[i]
	}
	return out
}

// Position is the last position computed by Update.
func (s *DragSession) Position() mgl32.Vec3 {
	return s.current
}

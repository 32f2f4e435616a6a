package gekko

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/editor/gizmo"
	"github.com/gekko3d/gizmo/editor/preview"
)

const circleSegments = 32

var previewBackground = [4]float32{0.12, 0.12, 0.14, 1}

// CollectScene turns every visible gizmo into preview primitives seen from
// camera, with a ground grid and axis labels on active translate gizmos.
func CollectScene(cmd *Commands, camera CameraComponent) preview.Scene {
	scene := preview.Scene{
		Camera:     camera,
		Background: previewBackground,
		Primitives: preview.Grid(5, 1, [4]float32{0.3, 0.3, 0.32, 1}),
	}

	MakeQuery2[GizmoComponent, TransformComponent](cmd).Map(func(eid EntityId, g *GizmoComponent, tr *TransformComponent) bool {
		if g.Hidden {
			return true
		}
		scene.Primitives = append(scene.Primitives, gizmoPrimitives(camera, *tr, *g)...)
		return true
	})

	MakeQuery2[TranslateControl, TransformComponent](cmd).Map(func(eid EntityId, control *TranslateControl, tr *TransformComponent) bool {
		if control.Selected == 0 {
			return true
		}
		for _, axis := range []gizmo.AxisName{gizmo.AxisX, gizmo.AxisY, gizmo.AxisZ} {
			cfg, ok := control.Table.Axis(axis)
			if !ok {
				continue
			}
			base, err := control.Table.Material(cfg.Material)
			if err != nil {
				continue
			}
			scene.Labels = append(scene.Labels, preview.Label{
				Text:  strings.ToUpper(string(axis)),
				At:    tr.Position.Add(axis.Direction().Mul(2.1 * tr.Scale.X())),
				Color: gizmo.Tint(base, control.State(axis), control.Table.Tint),
			})
		}
		return true
	})
	return scene
}

func gizmoPrimitives(camera CameraComponent, tr TransformComponent, g GizmoComponent) []preview.Primitive {
	model := tr.Matrix()
	scale := g.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	rot := g.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	// local maps an offset around the gizmo's own Position into the world.
	local := func(offset mgl32.Vec3) mgl32.Vec3 {
		p := g.Position.Add(rot.Rotate(mulVec3(offset, scale)))
		return model.Mul4x1(p.Vec4(1)).Vec3()
	}
	world := func(p mgl32.Vec3) mgl32.Vec3 {
		return model.Mul4x1(p.Vec4(1)).Vec3()
	}
	stroke := func(closed bool, width float32, pts ...mgl32.Vec3) preview.Primitive {
		return preview.Primitive{Kind: preview.Stroke, Points: pts, Closed: closed, Width: width, Color: g.Color, Depth: depthOf(camera, pts)}
	}
	fill := func(pts ...mgl32.Vec3) preview.Primitive {
		return preview.Primitive{Kind: preview.Fill, Points: pts, Color: g.Color, Depth: depthOf(camera, pts)}
	}
	circle := func(u, v mgl32.Vec3, radius float32) []mgl32.Vec3 {
		pts := make([]mgl32.Vec3, circleSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / circleSegments
			off := u.Mul(radius * float32(math.Cos(a))).Add(v.Mul(radius * float32(math.Sin(a))))
			pts[i] = local(off)
		}
		return pts
	}

	ex, ey, ez := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}

	switch g.Type {
	case GizmoLine:
		width := float32(1.5)
		if g.Radius > 0 {
			width = 3
		}
		return []preview.Primitive{stroke(false, width, world(g.Position), world(g.LineEnd))}
	case GizmoCone:
		base, apex := world(g.Position), world(g.LineEnd)
		axis := apex.Sub(base)
		if axis.Len() < 1e-6 {
			return nil
		}
		side := axis.Cross(camera.Forward())
		if side.Len() < 1e-6 {
			side = axis.Cross(camera.Up())
		}
		side = side.Normalize().Mul(g.Radius * tr.Scale.X())
		return []preview.Primitive{fill(base.Add(side), apex, base.Sub(side))}
	case GizmoQuad:
		r := g.Radius
		pts := []mgl32.Vec3{local(mgl32.Vec3{-r, 0, -r}), local(mgl32.Vec3{r, 0, -r}), local(mgl32.Vec3{r, 0, r}), local(mgl32.Vec3{-r, 0, r})}
		outline := stroke(true, 1.5, pts...)
		outline.Color[3] = 1
		return []preview.Primitive{fill(pts...), outline}
	case GizmoCube:
		var c [8]mgl32.Vec3
		for i := range c {
			c[i] = local(mgl32.Vec3{
				float32(i&1) - 0.5,
				float32(i>>1&1) - 0.5,
				float32(i>>2&1) - 0.5,
			})
		}
		edges := [12][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {0, 2}, {1, 3}, {4, 6}, {5, 7}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
		prims := make([]preview.Primitive, 0, len(edges))
		for _, e := range edges {
			prims = append(prims, stroke(false, 1.5, c[e[0]], c[e[1]]))
		}
		return prims
	case GizmoRect:
		pts := []mgl32.Vec3{local(mgl32.Vec3{-0.5, -0.5, 0}), local(mgl32.Vec3{0.5, -0.5, 0}), local(mgl32.Vec3{0.5, 0.5, 0}), local(mgl32.Vec3{-0.5, 0.5, 0})}
		return []preview.Primitive{stroke(true, 1.5, pts...)}
	case GizmoCircle:
		return []preview.Primitive{stroke(true, 1.5, circle(ex, ey, g.Radius)...)}
	case GizmoSphere:
		return []preview.Primitive{
			stroke(true, 1.5, circle(ex, ey, g.Radius)...),
			stroke(true, 1.5, circle(ex, ez, g.Radius)...),
			stroke(true, 1.5, circle(ey, ez, g.Radius)...),
		}
	}
	return nil
}

func depthOf(camera CameraComponent, pts []mgl32.Vec3) float32 {
	if len(pts) == 0 {
		return 0
	}
	var center mgl32.Vec3
	for _, p := range pts {
		center = center.Add(p)
	}
	center = center.Mul(1 / float32(len(pts)))
	return center.Sub(camera.Position).Dot(camera.Forward())
}

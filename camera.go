package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

// CameraComponent is a Y-up perspective camera. Angles are in degrees.
type CameraComponent struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fov      float32
	Near     float32
	Far      float32
}

func NewCamera(pos mgl32.Vec3, yaw, pitch float32) CameraComponent {
	return CameraComponent{
		Position: pos,
		Yaw:      yaw,
		Pitch:    pitch,
		Fov:      60,
		Near:     0.1,
		Far:      1000,
	}
}

func (c CameraComponent) Forward() mgl32.Vec3 {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(-math.Cos(yawRad) * math.Cos(pitchRad)),
	}.Normalize()
}

func (c CameraComponent) Right() mgl32.Vec3 {
	return c.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c CameraComponent) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

func (c CameraComponent) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c CameraComponent) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near * 1000
	}
	return mgl32.Perspective(mgl32.DegToRad(c.fov()), aspect, near, far)
}

func (c CameraComponent) fov() float32 {
	if c.Fov <= 0 {
		return 60
	}
	return c.Fov
}

// ScreenToWorldRay casts a ray from the camera through a pixel. The origin
// of the pixel grid is the top-left corner.
func (c CameraComponent) ScreenToWorldRay(mouseX, mouseY float64, width, height int) gizmo.Ray {
	// Normalized Device Coordinates
	nx := (2.0*float32(mouseX))/float32(width) - 1.0
	ny := 1.0 - (2.0*float32(mouseY))/float32(height) // Flip Y for NDC

	forward := c.Forward()
	right := c.Right()
	up := right.Cross(forward)

	aspect := float32(width) / float32(height)
	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(c.fov()) / 2.0)))

	dir := forward.Add(right.Mul(nx * aspect * tanHalfFov)).Add(up.Mul(ny * tanHalfFov))
	return gizmo.Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// WorldToScreen projects a world point to pixel coordinates. It reports
// false for points behind the camera.
func (c CameraComponent) WorldToScreen(p mgl32.Vec3, width, height int) (float32, float32, bool) {
	aspect := float32(width) / float32(height)
	clip := c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	sx := (ndcX + 1) / 2 * float32(width)
	sy := (1 - ndcY) / 2 * float32(height)
	return sx, sy, true
}

// ActiveCamera returns the first camera in the world.
func ActiveCamera(cmd *Commands) (CameraComponent, bool) {
	var cam CameraComponent
	found := false
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, c *CameraComponent) bool {
		cam = *c
		found = true
		return false
	})
	return cam, found
}

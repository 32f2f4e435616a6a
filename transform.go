package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent is the world transform of an entity.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is relative to Parent, or to the world for roots.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type Parent struct {
	Entity EntityId
}

func NewTransform(pos mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: pos,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewLocalTransform(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) LocalTransformComponent {
	return LocalTransformComponent{
		Position: pos,
		Rotation: rot,
		Scale:    scale,
	}
}

// Compose applies a local transform on top of t.
func (t TransformComponent) Compose(local LocalTransformComponent) TransformComponent {
	// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
	scaled := mulVec3(local.Position, t.Scale)
	return TransformComponent{
		Position: t.Position.Add(t.Rotation.Rotate(scaled)),
		Rotation: t.Rotation.Mul(local.Rotation).Normalize(),
		Scale:    mulVec3(t.Scale, local.Scale),
	}
}

// InverseTransformPoint maps a world point into t's local space.
func (t TransformComponent) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	local := t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
	for i := 0; i < 3; i++ {
		if t.Scale[i] != 0 {
			local[i] /= t.Scale[i]
		}
	}
	return local
}

func (t TransformComponent) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

package arplace

import "golang.org/x/image/math/f64"

// Pose represents a rigid transform: a position and an orientation in a
// fixed reference space. Poses are value types; assigning one is a snapshot,
// never an aliased reference.
type Pose struct {
	Position    Vec3
	Orientation Quat
}

// PoseIdentity returns the identity pose at the origin.
func PoseIdentity() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// PoseAt returns a pose at the given position with identity orientation.
func PoseAt(p Vec3) Pose {
	return Pose{Position: p, Orientation: QuatIdentity()}
}

// Transform applies the pose to a point expressed in the pose's local space.
func (p Pose) Transform(v Vec3) Vec3 {
	return p.Orientation.Rotate(v).Add(p.Position)
}

// TransformDir applies only the rotational part to a direction vector.
func (p Pose) TransformDir(v Vec3) Vec3 {
	return p.Orientation.Rotate(v)
}

// Mul composes two poses: the result applies other first, then p.
func (p Pose) Mul(other Pose) Pose {
	return Pose{
		Position:    p.Transform(other.Position),
		Orientation: p.Orientation.Mul(other.Orientation).Normalize(),
	}
}

// Inverse returns the inverse pose.
func (p Pose) Inverse() Pose {
	inv := p.Orientation.Conjugate()
	return Pose{
		Position:    inv.Rotate(p.Position.Neg()),
		Orientation: inv,
	}
}

// Mat4 returns the pose as a row-major 4x4 transform matrix, with elements
// indexed as m[4*row+col]. The layout matches x/image conventions so the
// matrix can be handed to rendering code directly.
func (p Pose) Mat4() f64.Mat4 {
	q := p.Orientation
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	return f64.Mat4{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy), p.Position.X,
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx), p.Position.Y,
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy), p.Position.Z,
		0, 0, 0, 1,
	}
}

package arplace

import "math"

// Quat represents a rotation as a unit quaternion.
// The zero value is not a valid rotation; use QuatIdentity or a constructor.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle creates a rotation of angle radians around the given axis.
// The axis does not need to be normalized. A zero axis yields the identity.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	u := axis.Unit()
	if u == (Vec3{}) {
		return QuatIdentity()
	}
	half := angle / 2
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: u.X * s,
		Y: u.Y * s,
		Z: u.Z * s,
	}
}

// QuatBetween creates the shortest rotation carrying unit vector from onto
// unit vector to. Antiparallel inputs rotate pi around an arbitrary
// perpendicular axis.
func QuatBetween(from, to Vec3) Quat {
	f := from.Unit()
	t := to.Unit()
	d := f.Dot(t)

	if d >= 1-1e-12 {
		return QuatIdentity()
	}
	if d <= -1+1e-12 {
		// Antiparallel: pick any axis perpendicular to f.
		axis := Vec3{X: 1}.Cross(f)
		if axis.LengthSq() < 1e-12 {
			axis = Vec3{Y: 1}.Cross(f)
		}
		return QuatAxisAngle(axis, math.Pi)
	}

	axis := f.Cross(t)
	q := Quat{W: 1 + d, X: axis.X, Y: axis.Y, Z: axis.Z}
	return q.Normalize()
}

// Mul returns the composition q*r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the conjugate quaternion.
// For unit quaternions this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion magnitude.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns the quaternion scaled to unit length.
// A zero quaternion normalizes to the identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = q * (0,v) * q^-1, expanded to avoid quaternion allocations.
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Mul(2 * q.W)).Add(uuv.Mul(2))
}

// IsIdentity returns true if the quaternion is exactly the identity rotation.
func (q Quat) IsIdentity() bool {
	return q.W == 1 && q.X == 0 && q.Y == 0 && q.Z == 0
}

package hittest

import "github.com/hutsulruslan/arplace"

// Ray is a hit-test query ray in the reference space: the viewer position
// and forward direction for the current frame.
type Ray struct {
	// Origin is the ray start point.
	Origin arplace.Vec3

	// Dir is the ray direction. It does not need to be normalized.
	Dir arplace.Vec3
}

// RayFrom returns the ray looking along the -Z axis of the given viewer
// pose, which is the device camera's forward direction.
func RayFrom(viewer arplace.Pose) Ray {
	return Ray{
		Origin: viewer.Position,
		Dir:    viewer.TransformDir(arplace.V3(0, 0, -1)),
	}
}

// Source answers per-frame surface queries.
//
// HitTest returns the nearest estimated surface intersected by the ray, or
// an absent estimate when no surface is found this frame. Implementations
// must treat a miss as a normal outcome and never panic or error on it.
type Source interface {
	HitTest(r Ray) arplace.Estimate
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(r Ray) arplace.Estimate

// HitTest calls f(r).
func (f SourceFunc) HitTest(r Ray) arplace.Estimate {
	return f(r)
}

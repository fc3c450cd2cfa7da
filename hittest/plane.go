package hittest

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hutsulruslan/arplace"
)

// rayEpsilon rejects hits behind or grazing the ray origin.
const rayEpsilon = 1e-9

// Plane is one detected bounded surface. The plane's local +Y axis is its
// normal; its extent spans the local X/Z axes around the center pose.
type Plane struct {
	// Center is the plane's center pose in the reference space.
	Center arplace.Pose

	// HalfExtentX is the half-size along the plane's local X axis.
	HalfExtentX float64

	// HalfExtentZ is the half-size along the plane's local Z axis.
	HalfExtentZ float64
}

// Normal returns the plane's world-space unit normal.
func (p Plane) Normal() arplace.Vec3 {
	return p.Center.TransformDir(arplace.V3(0, 1, 0))
}

// FloorPlane returns a horizontal plane centered at the given point.
func FloorPlane(center arplace.Vec3, halfX, halfZ float64) Plane {
	return Plane{
		Center:      arplace.PoseAt(center),
		HalfExtentX: halfX,
		HalfExtentZ: halfZ,
	}
}

// PlaneSet is a software hit-test source backed by a set of detected
// planes. Planes are typically added progressively as detection improves;
// an empty set answers every query with an absent estimate.
type PlaneSet struct {
	planes []Plane
}

// NewPlaneSet creates a source with the given initial planes.
func NewPlaneSet(planes ...Plane) *PlaneSet {
	return &PlaneSet{planes: planes}
}

// AddPlane adds a newly detected plane to the set.
func (s *PlaneSet) AddPlane(p Plane) {
	s.planes = append(s.planes, p)
	arplace.Logger().Debug("hittest: plane added",
		"center", p.Center.Position, "planes", len(s.planes))
}

// Len returns the number of detected planes.
func (s *PlaneSet) Len() int {
	return len(s.planes)
}

// HitTest returns the nearest in-bounds ray/plane intersection. The
// resulting pose sits at the intersection point with the plane's
// orientation, so the estimate's +Y axis is the surface normal.
func (s *PlaneSet) HitTest(r Ray) arplace.Estimate {
	origin := r3.Vec{X: r.Origin.X, Y: r.Origin.Y, Z: r.Origin.Z}
	dir := r3.Unit(r3.Vec{X: r.Dir.X, Y: r.Dir.Y, Z: r.Dir.Z})
	if math.IsNaN(dir.X) {
		// Zero direction: nothing can be hit.
		return arplace.NoEstimate()
	}

	best := math.Inf(1)
	var bestPose arplace.Pose
	found := false

	for _, p := range s.planes {
		n := p.Normal()
		normal := r3.Vec{X: n.X, Y: n.Y, Z: n.Z}
		denom := r3.Dot(dir, normal)
		if math.Abs(denom) < rayEpsilon {
			continue // ray parallel to plane
		}

		c := p.Center.Position
		center := r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
		t := r3.Dot(r3.Sub(center, origin), normal) / denom
		if t < rayEpsilon || t >= best {
			continue
		}

		hit := r3.Add(origin, r3.Scale(t, dir))
		point := arplace.V3(hit.X, hit.Y, hit.Z)

		// Bounds check in the plane's local frame.
		local := p.Center.Inverse().Transform(point)
		if math.Abs(local.X) > p.HalfExtentX || math.Abs(local.Z) > p.HalfExtentZ {
			continue
		}

		best = t
		bestPose = arplace.Pose{Position: point, Orientation: p.Center.Orientation}
		found = true
	}

	if !found {
		return arplace.NoEstimate()
	}
	return arplace.EstimateAt(bestPose)
}

// Ensure PlaneSet implements Source.
var _ Source = (*PlaneSet)(nil)

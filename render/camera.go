package render

import (
	"math"

	"github.com/hutsulruslan/arplace"
)

// Camera projects world-space points onto the overlay target.
//
// The camera sits at the viewer pose and looks down its local -Z axis,
// matching the convention used by the hit-test ray. Projection is a
// standard pinhole model with a vertical field of view.
type Camera struct {
	pose   arplace.Pose
	fovY   float64
	width  int
	height int

	near float64
}

// NewCamera creates a camera with the given vertical field of view (in
// radians) and viewport size in pixels.
func NewCamera(fovY float64, width, height int) *Camera {
	return &Camera{
		pose:   arplace.PoseIdentity(),
		fovY:   fovY,
		width:  width,
		height: height,
		near:   0.01,
	}
}

// SetPose moves the camera to the given viewer pose.
func (c *Camera) SetPose(p arplace.Pose) { c.pose = p }

// Pose returns the camera's current pose.
func (c *Camera) Pose() arplace.Pose { return c.pose }

// Resize updates the viewport size in pixels.
func (c *Camera) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Project maps a world-space point to pixel coordinates.
//
// The boolean result is false when the point is behind the camera or
// closer than the near plane, in which case the coordinates are invalid.
func (c *Camera) Project(world arplace.Vec3) (x, y float64, ok bool) {
	local := c.pose.Inverse().Transform(world)

	// The camera looks down -Z; depth into the scene is -local.Z.
	depth := -local.Z
	if depth < c.near {
		return 0, 0, false
	}

	focal := float64(c.height) / (2 * math.Tan(c.fovY/2))
	x = float64(c.width)/2 + local.X*focal/depth
	y = float64(c.height)/2 - local.Y*focal/depth
	return x, y, true
}

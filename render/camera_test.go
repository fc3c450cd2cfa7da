package render

import (
	"math"
	"testing"

	"github.com/hutsulruslan/arplace"
)

func TestProjectCenter(t *testing.T) {
	c := NewCamera(math.Pi/2, 640, 480)

	// A point straight ahead lands in the viewport center.
	x, y, ok := c.Project(arplace.V3(0, 0, -2))
	if !ok {
		t.Fatal("point ahead of camera not projected")
	}
	if x != 320 || y != 240 {
		t.Errorf("projected to (%v, %v), want viewport center", x, y)
	}
}

func TestProjectOffsets(t *testing.T) {
	// 90° vertical FOV: focal length equals half the viewport height.
	c := NewCamera(math.Pi/2, 640, 480)

	tests := []struct {
		name  string
		world arplace.Vec3
		x, y  float64
	}{
		{"right", arplace.V3(1, 0, -1), 320 + 240, 240},
		{"left", arplace.V3(-1, 0, -1), 320 - 240, 240},
		{"up", arplace.V3(0, 1, -1), 320, 240 - 240},
		{"down", arplace.V3(0, -1, -1), 320, 240 + 240},
		{"far right", arplace.V3(1, 0, -2), 320 + 120, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := c.Project(tt.world)
			if !ok {
				t.Fatal("not projected")
			}
			if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
				t.Errorf("projected to (%v, %v), want (%v, %v)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := NewCamera(math.Pi/3, 640, 480)

	if _, _, ok := c.Project(arplace.V3(0, 0, 1)); ok {
		t.Error("point behind the camera projected")
	}
	if _, _, ok := c.Project(arplace.V3(0, 0, 0)); ok {
		t.Error("point at the camera projected")
	}
}

func TestProjectFollowsCameraPose(t *testing.T) {
	c := NewCamera(math.Pi/2, 640, 480)

	// Move the camera back; the same point stays centered but shrinks away.
	c.SetPose(arplace.PoseAt(arplace.V3(0, 0, 2)))
	x, y, ok := c.Project(arplace.V3(0, 0, -2))
	if !ok {
		t.Fatal("not projected after camera move")
	}
	if x != 320 || y != 240 {
		t.Errorf("projected to (%v, %v), want viewport center", x, y)
	}

	// Rotate the camera 180° about Y: the point is now behind it.
	c.SetPose(arplace.Pose{
		Position:    arplace.V3(0, 0, 2),
		Orientation: arplace.QuatAxisAngle(arplace.V3(0, 1, 0), math.Pi),
	})
	if _, _, ok := c.Project(arplace.V3(0, 0, -2)); ok {
		t.Error("point behind the rotated camera projected")
	}
}

func TestResize(t *testing.T) {
	c := NewCamera(math.Pi/2, 640, 480)
	c.Resize(200, 100)

	x, y, ok := c.Project(arplace.V3(0, 0, -1))
	if !ok {
		t.Fatal("not projected")
	}
	if x != 100 || y != 50 {
		t.Errorf("projected to (%v, %v), want new viewport center", x, y)
	}
}

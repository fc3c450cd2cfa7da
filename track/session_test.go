package track

import (
	"testing"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/asset"
	"github.com/hutsulruslan/arplace/scene"
)

const crateJSON = `{
	"name": "crate",
	"nodes": [
		{"name": "body", "position": [0, 0.25, 0], "halfExtent": [0.25, 0.25, 0.25], "color": "#b5651d"}
	]
}`

func loadCrate(t *testing.T) *asset.Template {
	t.Helper()
	tpl, err := asset.Decode([]byte(crateJSON))
	if err != nil {
		t.Fatalf("decode template: %v", err)
	}
	return tpl
}

func poseAt(x, y, z float64) arplace.Pose {
	return arplace.PoseAt(arplace.V3(x, y, z))
}

func TestNewSessionRegistersHiddenMarker(t *testing.T) {
	g := scene.NewGraph()
	s := NewSession(g)

	if g.Len() != 1 {
		t.Fatalf("graph has %d nodes, want marker only", g.Len())
	}
	m := s.Marker()
	if m.Visible() {
		t.Error("marker visible before first estimate")
	}
	if m.Kind() != scene.KindReticle {
		t.Errorf("marker kind = %v, want reticle", m.Kind())
	}
	if s.Placements() != 0 {
		t.Errorf("Placements = %d, want 0", s.Placements())
	}

	// A nil graph gets a fresh one.
	s2 := NewSession(nil)
	if s2.Graph() == nil || s2.Graph().Len() != 1 {
		t.Error("nil graph not replaced")
	}
}

func TestHandleFrameVisibilityMatchesEstimate(t *testing.T) {
	s := NewSession(scene.NewGraph())

	frames := []struct {
		est  arplace.Estimate
		want bool
	}{
		{arplace.NoEstimate(), false},
		{arplace.EstimateAt(poseAt(1, 0, 0)), true},
		{arplace.EstimateAt(poseAt(2, 0, 0)), true},
		{arplace.NoEstimate(), false},
		{arplace.NoEstimate(), false},
		{arplace.EstimateAt(poseAt(3, 0, 0)), true},
	}
	for i, f := range frames {
		s.HandleFrame(f.est)
		if got := s.Marker().Visible(); got != f.want {
			t.Errorf("frame %d: visible = %v, want %v", i, got, f.want)
		}
	}
}

func TestHandleFrameCopiesPoseExactly(t *testing.T) {
	s := NewSession(scene.NewGraph())
	want := arplace.Pose{
		Position:    arplace.V3(0.5, 0, -2),
		Orientation: arplace.QuatAxisAngle(arplace.V3(0, 1, 0), 0.3),
	}
	s.HandleFrame(arplace.EstimateAt(want))
	if got := s.Marker().Pose(); got != want {
		t.Errorf("marker pose = %+v, want %+v", got, want)
	}
}

func TestAcquiredAndLostFireOnEdgesOnly(t *testing.T) {
	var acquired, lost int
	var acquiredAt arplace.Vec3
	s := NewSession(scene.NewGraph(), WithHooks(Hooks{
		SurfaceAcquired: func(p arplace.Pose) {
			acquired++
			acquiredAt = p.Position
		},
		SurfaceLost: func() { lost++ },
	}))

	// [absent, present@T1, present@T2, absent] -> acquired once, lost once.
	s.HandleFrame(arplace.NoEstimate())
	s.HandleFrame(arplace.EstimateAt(poseAt(1, 0, 0)))
	s.HandleFrame(arplace.EstimateAt(poseAt(2, 0, 0)))
	s.HandleFrame(arplace.NoEstimate())

	if acquired != 1 {
		t.Errorf("acquired fired %d times, want 1", acquired)
	}
	if acquiredAt != arplace.V3(1, 0, 0) {
		t.Errorf("acquired at %+v, want first present pose", acquiredAt)
	}
	if lost != 1 {
		t.Errorf("lost fired %d times, want 1", lost)
	}
}

func TestSelectWithoutSurfaceIsNoOp(t *testing.T) {
	g := scene.NewGraph()
	var placed int
	s := NewSession(g,
		WithTemplate(loadCrate(t)),
		WithHooks(Hooks{Placed: func(PlacementEvent) { placed++ }}))

	s.HandleSelect() // never saw a surface
	s.HandleFrame(arplace.EstimateAt(poseAt(1, 0, 0)))
	s.HandleFrame(arplace.NoEstimate())
	s.HandleSelect() // surface lost again

	if s.Placements() != 0 {
		t.Errorf("Placements = %d, want 0", s.Placements())
	}
	if placed != 0 {
		t.Errorf("placed hook fired %d times", placed)
	}
	if g.Len() != 1 {
		t.Errorf("graph has %d nodes, want marker only", g.Len())
	}
}

func TestSelectWithoutTemplateIsNoOp(t *testing.T) {
	g := scene.NewGraph()
	s := NewSession(g)

	s.HandleFrame(arplace.EstimateAt(poseAt(1, 0, 0)))
	s.HandleSelect()

	if s.Placements() != 0 {
		t.Errorf("Placements = %d, want 0 while asset unloaded", s.Placements())
	}
	if g.Len() != 1 {
		t.Errorf("graph has %d nodes, want marker only", g.Len())
	}

	// The asset arriving later enables the same select.
	s.BindTemplate(loadCrate(t))
	s.HandleSelect()
	if s.Placements() != 1 {
		t.Errorf("Placements = %d after bind, want 1", s.Placements())
	}
}

func TestValidSelectPlacesExactlyOneSnapshot(t *testing.T) {
	g := scene.NewGraph()
	var events []PlacementEvent
	s := NewSession(g,
		WithTemplate(loadCrate(t)),
		WithHooks(Hooks{Placed: func(ev PlacementEvent) { events = append(events, ev) }}))

	at := poseAt(1, 0, -2)
	s.HandleFrame(arplace.EstimateAt(at))
	s.HandleSelect()

	if s.Placements() != 1 {
		t.Fatalf("Placements = %d, want 1", s.Placements())
	}
	if g.Len() != 2 {
		t.Fatalf("graph has %d nodes, want marker + instance", g.Len())
	}
	inst := g.Nodes()[1]
	if inst.Pose() != at {
		t.Errorf("instance pose = %+v, want %+v", inst.Pose(), at)
	}

	// Later marker mutation must not move the placed instance.
	s.HandleFrame(arplace.EstimateAt(poseAt(9, 9, 9)))
	if inst.Pose() != at {
		t.Errorf("instance moved with marker: %+v", inst.Pose())
	}

	if len(events) != 1 {
		t.Fatalf("placed hook fired %d times, want 1", len(events))
	}
	if events[0].Count != 1 || events[0].Position != at.Position {
		t.Errorf("event = %+v", events[0])
	}
	if events[0].InstanceID != inst.ID() {
		t.Error("event instance id does not match registered node")
	}
}

func TestDoubleSelectSameFramePlacesTwice(t *testing.T) {
	g := scene.NewGraph()
	s := NewSession(g, WithTemplate(loadCrate(t)))

	at := poseAt(0, 0, -1)
	s.HandleFrame(arplace.EstimateAt(at))
	s.HandleSelect()
	s.HandleSelect()

	if s.Placements() != 2 {
		t.Fatalf("Placements = %d, want 2", s.Placements())
	}
	a, b := g.Nodes()[1], g.Nodes()[2]
	if a.Pose() != at || b.Pose() != at {
		t.Error("instances not both at the marker pose")
	}
	if a == b || a.ID() == b.ID() {
		t.Error("both selects returned the same instance")
	}
}

func TestPlacementCounterIsMonotonic(t *testing.T) {
	s := NewSession(scene.NewGraph(), WithTemplate(loadCrate(t)))
	s.HandleFrame(arplace.EstimateAt(poseAt(0, 0, 0)))

	var last uint64
	for i := 0; i < 5; i++ {
		s.HandleSelect()
		if got := s.Placements(); got != last+1 {
			t.Fatalf("Placements = %d after select %d, want %d", got, i, last+1)
		}
		last = s.Placements()

		// Interleave misses; the counter never decreases.
		s.HandleFrame(arplace.NoEstimate())
		if s.Placements() != last {
			t.Fatal("counter changed on frame")
		}
		s.HandleFrame(arplace.EstimateAt(poseAt(float64(i), 0, 0)))
	}
}

func TestBindTemplateFirstWins(t *testing.T) {
	first := loadCrate(t)
	second := loadCrate(t)
	s := NewSession(scene.NewGraph())

	s.BindTemplate(nil) // ignored
	if s.Template() != nil {
		t.Fatal("nil bind set a template")
	}
	s.BindTemplate(first)
	s.BindTemplate(second)
	if s.Template() != first {
		t.Error("later bind replaced the first template")
	}
}

func TestEndStopsEverything(t *testing.T) {
	g := scene.NewGraph()
	var hookCalls int
	s := NewSession(g,
		WithTemplate(loadCrate(t)),
		WithHooks(Hooks{
			SurfaceAcquired: func(arplace.Pose) { hookCalls++ },
			SurfaceLost:     func() { hookCalls++ },
			Placed:          func(PlacementEvent) { hookCalls++ },
		}))

	s.HandleFrame(arplace.EstimateAt(poseAt(1, 0, 0)))
	s.HandleSelect()
	hookCalls = 0

	s.End()
	if !s.Ended() {
		t.Fatal("Ended() = false after End")
	}
	s.End() // idempotent

	markerPose := s.Marker().Pose()
	nodes := g.Len()
	count := s.Placements()

	// A frame callback firing after end is absorbed silently.
	s.HandleFrame(arplace.EstimateAt(poseAt(5, 5, 5)))
	s.HandleFrame(arplace.NoEstimate())
	s.HandleSelect()
	s.BindTemplate(loadCrate(t))

	if s.Marker().Pose() != markerPose {
		t.Error("marker moved after End")
	}
	if !s.Marker().Visible() {
		t.Error("marker visibility changed after End")
	}
	if g.Len() != nodes {
		t.Errorf("graph grew after End: %d -> %d", nodes, g.Len())
	}
	if s.Placements() != count {
		t.Error("counter changed after End")
	}
	if hookCalls != 0 {
		t.Errorf("hooks fired %d times after End", hookCalls)
	}
}

func TestFrameTouchesOnlyTheMarker(t *testing.T) {
	g := scene.NewGraph()
	s := NewSession(g, WithTemplate(loadCrate(t)))
	s.HandleFrame(arplace.EstimateAt(poseAt(0, 0, 0)))
	s.HandleSelect()

	version := g.Version()
	count := s.Placements()
	s.HandleFrame(arplace.EstimateAt(poseAt(1, 1, 1)))
	s.HandleFrame(arplace.NoEstimate())

	if g.Version() != version {
		t.Error("frame handling modified the graph registry")
	}
	if s.Placements() != count {
		t.Error("frame handling changed the placement counter")
	}
}

func TestWithMarkerNode(t *testing.T) {
	custom := scene.NewNode("my-reticle", scene.KindReticle)
	g := scene.NewGraph()
	s := NewSession(g, WithMarkerNode(custom))

	if s.Marker() != custom {
		t.Fatal("custom marker not used")
	}
	if custom.Visible() {
		t.Error("custom marker not hidden at session start")
	}
	if g.Nodes()[0] != custom {
		t.Error("custom marker not registered")
	}
}

package track

import (
	"log/slog"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/asset"
	"github.com/hutsulruslan/arplace/scene"
)

// Session is the surface-tracking and placement loop for one AR
// experience, from start to the terminal end signal.
//
// A session owns exactly one marker node. The marker's visibility is a
// pure function of the most recent frame's estimate: visible exactly when
// a surface was found. Placement duplicates the bound template at a
// snapshot of the marker pose; instances are independent once created and
// are never removed by the session.
//
// Sessions are not safe for concurrent use; see the package documentation
// for the callback model they assume.
type Session struct {
	log      *slog.Logger
	graph    *scene.Graph
	marker   *scene.Node
	template *asset.Template
	hooks    Hooks

	placements uint64
	ended      bool
}

// NewSession creates a session tracking into the given graph. The marker
// is created hidden and registered immediately. A nil graph gets a fresh
// empty one.
func NewSession(graph *scene.Graph, opts ...Option) *Session {
	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if graph == nil {
		graph = scene.NewGraph()
	}
	marker := o.marker
	if marker == nil {
		marker = defaultMarker()
	}
	marker.SetVisible(false)
	graph.Add(marker)

	s := &Session{
		log:      o.log,
		graph:    graph,
		marker:   marker,
		template: o.template,
		hooks:    o.hooks,
	}
	s.logger().Debug("session started", "marker", marker.ID())
	return s
}

// logger returns the session's pinned logger, or the shared arplace
// logger so SetLogger takes effect for running sessions.
func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return arplace.Logger()
}

// HandleFrame consumes the current frame's surface estimate.
//
// A present estimate moves the marker to the estimated pose and shows it;
// an absent one hides it. The marker state after the call always matches
// the estimate's presence. Edge transitions fire the SurfaceAcquired and
// SurfaceLost hooks. An absent estimate is a normal outcome, never an
// error, and nothing but the marker is touched. After End the call is a
// no-op.
func (s *Session) HandleFrame(est arplace.Estimate) {
	if s.ended {
		return
	}

	pose, ok := est.Pose()
	if !ok {
		if s.marker.Visible() {
			s.marker.SetVisible(false)
			s.logger().Info("surface lost")
			if s.hooks.SurfaceLost != nil {
				s.hooks.SurfaceLost()
			}
		}
		return
	}

	s.marker.SetPose(pose)
	if !s.marker.Visible() {
		s.marker.SetVisible(true)
		s.logger().Info("surface acquired", "position", pose.Position)
		if s.hooks.SurfaceAcquired != nil {
			s.hooks.SurfaceAcquired(pose)
		}
	}
}

// HandleSelect attempts one placement at the marker.
//
// Placement needs a bound template and a visible marker; when either is
// missing the call is a silent no-op — both are normal transient
// conditions, not errors, and the next select simply tries again. On
// success exactly one instance is registered at a snapshot of the marker
// pose, the placement counter increments, and the Placed hook fires.
func (s *Session) HandleSelect() {
	if s.ended {
		return
	}
	if s.template == nil || !s.marker.Visible() {
		s.logger().Debug("select ignored",
			"loaded", s.template != nil, "surface", s.marker.Visible())
		return
	}

	pose := s.marker.Pose()
	inst := s.template.Instantiate()
	inst.SetPose(pose)
	s.graph.Add(inst)
	s.placements++

	ev := PlacementEvent{
		InstanceID: inst.ID(),
		Position:   pose.Position,
		Count:      s.placements,
	}
	s.logger().Info("placed",
		"template", s.template.Name(),
		"instance", ev.InstanceID,
		"position", ev.Position,
		"count", ev.Count)
	if s.hooks.Placed != nil {
		s.hooks.Placed(ev)
	}
}

// BindTemplate delivers the asynchronously loaded template to the session.
// The first bind wins; later binds and nil templates are ignored, as is
// any bind after End.
func (s *Session) BindTemplate(tpl *asset.Template) {
	if s.ended || tpl == nil {
		return
	}
	if s.template != nil {
		s.logger().Debug("template already bound", "ignored", tpl.Name())
		return
	}
	s.template = tpl
	s.logger().Info("asset ready", "template", tpl.Name())
}

// End terminally stops the session. Idempotent. After End every handler
// is a no-op: no marker updates, no placements, no registry calls.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	s.logger().Info("session ended", "placements", s.placements)
}

// Ended reports whether End has been called.
func (s *Session) Ended() bool {
	return s.ended
}

// Placements returns the number of instances placed so far.
// The counter is monotonic within the session's lifetime.
func (s *Session) Placements() uint64 {
	return s.placements
}

// Marker returns the session's marker node.
func (s *Session) Marker() *scene.Node {
	return s.marker
}

// Graph returns the graph the session registers into.
func (s *Session) Graph() *scene.Graph {
	return s.graph
}

// Template returns the bound template, or nil while loading.
func (s *Session) Template() *asset.Template {
	return s.template
}

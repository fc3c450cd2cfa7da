package track

import (
	"image/color"
	"log/slog"

	"github.com/hutsulruslan/arplace"
	"github.com/hutsulruslan/arplace/asset"
	"github.com/hutsulruslan/arplace/scene"
)

// Option configures a Session during creation.
type Option func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	log      *slog.Logger
	hooks    Hooks
	marker   *scene.Node
	template *asset.Template
}

// WithLogger pins the session to a specific logger instead of the shared
// arplace logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.log = l
	}
}

// WithHooks sets the session's observability callbacks.
func WithHooks(h Hooks) Option {
	return func(o *sessionOptions) {
		o.hooks = h
	}
}

// WithMarkerNode supplies a custom marker node instead of the default
// reticle. The session takes ownership: it registers the node and drives
// its pose and visibility.
func WithMarkerNode(n *scene.Node) Option {
	return func(o *sessionOptions) {
		o.marker = n
	}
}

// WithTemplate binds an already-loaded asset template at creation time,
// for callers that load synchronously before starting the session.
func WithTemplate(t *asset.Template) Option {
	return func(o *sessionOptions) {
		o.template = t
	}
}

// defaultMarker builds the standard reticle node: a flat ring, hidden
// until a surface is first acquired.
func defaultMarker() *scene.Node {
	n := scene.NewNode("reticle", scene.KindReticle)
	n.HalfExtent = arplace.V3(0.15, 0, 0.15)
	n.Color = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	n.SetVisible(false)
	return n
}

// Package track implements the surface-tracking and placement loop.
//
// A Session is the explicit context object tying one AR experience
// together: it owns the placement marker, consumes one surface estimate per
// frame, and turns user select actions into placed instances of a loaded
// asset template.
//
// # Event model
//
// Two external drivers feed a session. The frame callback is strictly
// ordered — the platform completes one HandleFrame before the next — and
// the select signal arrives between frames, never during one. Under that
// cooperative model plain field access is sufficient and the session uses
// no locks; callers must not invoke handlers concurrently.
//
// A session ends exactly once. After End, every handler is a silent no-op:
// a frame callback already in flight when the session ends may still fire,
// and the ended guard absorbs it.
//
// # Observability
//
// Sessions report surface acquisition, surface loss, and placements through
// Hooks — one subscriber per event, advisory only — and through the shared
// arplace logger.
package track

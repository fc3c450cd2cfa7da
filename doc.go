// Package arplace implements the surface-tracking and placement loop of an
// augmented-reality session.
//
// # Overview
//
// arplace models the part of an AR experience that turns per-frame hit-test
// results into a placement reticle and, on a user select action, into placed
// copies of a loaded 3D asset. The platform pieces — session negotiation,
// camera feed, display — are external collaborators; this module owns only
// the loop between them.
//
// # Quick Start
//
//	graph := scene.NewGraph()
//	sess := track.NewSession(graph)
//
//	// Each display frame, query a hit-test source and feed the result in.
//	sess.HandleFrame(src.HitTest(viewerRay))
//
//	// On a user tap, try to place the loaded asset at the reticle.
//	sess.HandleSelect()
//
// # Architecture
//
// The library is organized into:
//   - Root: pose math (Vec3, Quat, Pose), the optional Estimate type, logging
//   - hittest: query rays and hit-test sources (plane-set tester, registry)
//   - scene: the node graph that placed instances are registered into
//   - asset: immutable templates and asynchronous loading
//   - track: the Session driving marker updates and placement
//   - render: overlay rendering of the reticle and placed instances
//
// # Coordinate System
//
// Right-handed world coordinates:
//   - X increases right
//   - Y increases up
//   - Z increases toward the viewer (viewer looks down -Z)
//   - Angles in radians
//
// # Concurrency
//
// The loop is cooperative and callback-driven. The platform serializes frame
// callbacks, so Session uses plain field access with no locking; callers must
// not invoke handlers concurrently. See the track package for details.
package arplace

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)

// Package scene provides the node graph that tracked markers and placed
// instances are registered into.
//
// The graph is a deliberately small, append-only registry: the placement
// loop adds nodes and never removes them (instance removal is outside the
// loop's responsibility). Nodes carry a pose, a visibility flag, and enough
// shape information for overlay rendering.
//
// Like the rest of the placement loop, the graph follows the cooperative
// single-threaded callback model: no internal locking, callers serialize
// access.
package scene

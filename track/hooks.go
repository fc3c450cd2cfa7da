package track

import (
	"github.com/google/uuid"

	"github.com/hutsulruslan/arplace"
)

// PlacementEvent describes one successful placement.
type PlacementEvent struct {
	// InstanceID identifies the placed scene node.
	InstanceID uuid.UUID

	// Position is the world position the instance was placed at.
	Position arplace.Vec3

	// Count is the session's placement counter after this placement.
	// It is monotonic for the lifetime of the session.
	Count uint64
}

// Hooks are the session's observability callbacks.
//
// Each event has at most one subscriber; nil fields are skipped. Hooks are
// advisory only — they fire after the session state has settled and must
// not re-enter the session.
type Hooks struct {
	// SurfaceAcquired fires when the marker transitions hidden -> visible,
	// with the acquiring surface pose.
	SurfaceAcquired func(arplace.Pose)

	// SurfaceLost fires when the marker transitions visible -> hidden.
	SurfaceLost func()

	// Placed fires after each successful placement.
	Placed func(PlacementEvent)
}

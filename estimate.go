package arplace

// Estimate is the optional result of a per-frame surface query: either a
// surface was found at some pose this frame, or it was not. The zero value
// is the absent estimate.
//
// Absence is a normal, expected outcome — frames with no detected surface
// are not errors — so Estimate is a sum type rather than a nullable pointer.
type Estimate struct {
	pose  Pose
	valid bool
}

// EstimateAt returns a present estimate with the given surface pose.
func EstimateAt(p Pose) Estimate {
	return Estimate{pose: p, valid: true}
}

// NoEstimate returns the absent estimate.
func NoEstimate() Estimate {
	return Estimate{}
}

// Valid reports whether a surface was found this frame.
func (e Estimate) Valid() bool {
	return e.valid
}

// Pose returns the estimated surface pose. The second return value mirrors
// Valid; the pose is only meaningful when it is true.
func (e Estimate) Pose() (Pose, bool) {
	return e.pose, e.valid
}

// MustPose returns the estimated surface pose, panicking if the estimate
// is absent. Intended for tests and callers that have already checked Valid.
func (e Estimate) MustPose() Pose {
	if !e.valid {
		panic("arplace: MustPose on absent estimate")
	}
	return e.pose
}

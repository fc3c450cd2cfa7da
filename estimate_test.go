package arplace

import "testing"

func TestEstimatePresence(t *testing.T) {
	p := PoseAt(V3(1, 2, 3))

	present := EstimateAt(p)
	if !present.Valid() {
		t.Fatal("EstimateAt is not valid")
	}
	got, ok := present.Pose()
	if !ok || got != p {
		t.Errorf("Pose() = %+v, %v; want %+v, true", got, ok, p)
	}

	absent := NoEstimate()
	if absent.Valid() {
		t.Fatal("NoEstimate is valid")
	}
	if _, ok := absent.Pose(); ok {
		t.Error("absent Pose() reported ok")
	}
}

func TestEstimateZeroValueIsAbsent(t *testing.T) {
	var e Estimate
	if e.Valid() {
		t.Error("zero Estimate is valid")
	}
}

func TestMustPosePanicsWhenAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustPose on absent estimate did not panic")
		}
	}()
	NoEstimate().MustPose()
}

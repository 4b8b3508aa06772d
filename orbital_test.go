package astrodyn

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gonum/floats"
)

// stubPropagator returns a fixed state and counts calls, so the tests can
// assert when a read hits the cache and when it re-propagates.
type stubPropagator struct {
	R, V  []float64
	calls int
	fail  bool
}

func (p *stubPropagator) PropagateTEME(epoch time.Time) ([]float64, []float64, error) {
	p.calls++
	if p.fail {
		return nil, nil, fmt.Errorf("%w: stub failure", ErrInvalidArgument)
	}
	return []float64{p.R[0], p.R[1], p.R[2]}, []float64{p.V[0], p.V[1], p.V[2]}, nil
}

func testObject(t *testing.T, prop Propagator, eph SunEphemeris) *OrbitalObject {
	t.Helper()
	tle, err := ParseTLELines(issLine1, issLine2)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := NewOrbitalObject("iss", tle, prop, eph)
	if err != nil {
		t.Fatal(err)
	}
	return obj
}

func TestOrbitalObjectLifecycle(t *testing.T) {
	prop := &stubPropagator{R: []float64{6524.834, 6862.875, 6448.296}, V: []float64{4.901327, 5.533756, -1.976341}}
	obj := testObject(t, prop, FixedSunEphemeris{R: []float64{1.496e8, 0, 0}})
	if obj.Name() != "iss" || obj.NoradID() != 25544 {
		t.Fatal("identity attributes invalid")
	}
	// Reads before the first update fail, never return stale zeros.
	if _, err := obj.PositionTEME(); !errors.Is(err, ErrPreconditionUnset) {
		t.Fatalf("read before UpdateState should fail with PreconditionUnset, got %v", err)
	}
	if _, err := obj.VelocityTEME(); !errors.Is(err, ErrPreconditionUnset) {
		t.Fatalf("read before UpdateState should fail with PreconditionUnset, got %v", err)
	}
	if _, _, err := obj.StateGCRS(); !errors.Is(err, ErrPreconditionUnset) {
		t.Fatalf("read before UpdateState should fail with PreconditionUnset, got %v", err)
	}
	if _, err := obj.IsInEclipse(); !errors.Is(err, ErrPreconditionUnset) {
		t.Fatalf("eclipse before UpdateState should fail with PreconditionUnset, got %v", err)
	}

	epoch := time.Date(2008, 9, 20, 12, 25, 40, 0, time.UTC)
	if err := obj.UpdateState(epoch); err != nil {
		t.Fatal(err)
	}
	if !obj.Epoch().Equal(epoch) {
		t.Fatalf("epoch not recorded: %s", obj.Epoch())
	}
	if prop.calls != 1 {
		t.Fatalf("UpdateState must propagate exactly once, did %d times", prop.calls)
	}
	// TEME reads are served from the epoch cache.
	R, err := obj.PositionTEME()
	if err != nil {
		t.Fatal(err)
	}
	if _, err = obj.VelocityTEME(); err != nil {
		t.Fatal(err)
	}
	if prop.calls != 1 {
		t.Fatalf("TEME reads must not re-propagate, calls=%d", prop.calls)
	}
	if !vectorsEqual(R, prop.R) {
		t.Fatalf("cached position invalid: %+v", R)
	}
	// Mutating the returned slice must not corrupt the cache.
	R[0] = 0
	R2, _ := obj.PositionTEME()
	if !vectorsEqual(R2, prop.R) {
		t.Fatal("position read returned the internal cache slice")
	}
}

func TestOrbitalObjectUpdateOverwrites(t *testing.T) {
	prop := &stubPropagator{R: []float64{7000, 0, 0}, V: []float64{0, 7.5, 0}}
	obj := testObject(t, prop, FixedSunEphemeris{R: []float64{1.496e8, 0, 0}})
	if err := obj.UpdateState(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	prop.R = []float64{0, 7000, 0}
	if err := obj.UpdateState(time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	R, _ := obj.PositionTEME()
	if !vectorsEqual(R, []float64{0, 7000, 0}) {
		t.Fatal("second update did not overwrite the cached state")
	}
	// A failed update keeps the previous state and epoch.
	prop.fail = true
	before := obj.Epoch()
	if err := obj.UpdateState(time.Date(2020, 1, 1, 2, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected propagation failure")
	}
	if !obj.Epoch().Equal(before) {
		t.Fatal("failed update must not advance the epoch")
	}
	// Epochs are normalized to UTC.
	prop.fail = false
	loc := time.FixedZone("UTC+2", 7200)
	local := time.Date(2020, 1, 1, 5, 0, 0, 0, loc)
	if err := obj.UpdateState(local); err != nil {
		t.Fatal(err)
	}
	if obj.Epoch().Location() != time.UTC {
		t.Fatal("epoch was not normalized to UTC")
	}
}

func TestOrbitalObjectGCRS(t *testing.T) {
	prop := &stubPropagator{R: []float64{7000, 0, 0}, V: []float64{0, 7.5, 0}}
	obj := testObject(t, prop, FixedSunEphemeris{R: []float64{1.496e8, 0, 0}})
	if err := obj.UpdateState(time.Date(2017, 3, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	rG, vG, err := obj.StateGCRS()
	if err != nil {
		t.Fatal(err)
	}
	// The rotation preserves norms.
	if !floats.EqualWithinRel(Norm(rG), 7000, 1e-12) {
		t.Fatalf("GCRS position norm invalid: %f", Norm(rG))
	}
	if !floats.EqualWithinRel(Norm(vG), 7.5, 1e-12) {
		t.Fatalf("GCRS velocity norm invalid: %f", Norm(vG))
	}
	rG2, err := obj.PositionGCRS()
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqual(rG, rG2) {
		t.Fatal("PositionGCRS disagrees with StateGCRS")
	}
}

func TestOrbitalObjectCOE(t *testing.T) {
	prop := &stubPropagator{R: []float64{6524.834, 6862.875, 6448.296}, V: []float64{4.901327, 5.533756, -1.976341}}
	obj := testObject(t, prop, FixedSunEphemeris{R: []float64{1.496e8, 0, 0}})
	if err := obj.UpdateState(time.Date(2017, 3, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	coe, err := obj.COE(TEME)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(coe.SemimajorAxis, 36127.343, 1e-1) {
		t.Fatalf("incorrect semimajor axis a=%f", coe.SemimajorAxis)
	}
	// Shape elements are frame independent.
	coeG, err := obj.COE(GCRS)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(coeG.SemimajorAxis, coe.SemimajorAxis, 1e-6) {
		t.Fatal("semimajor axis changed across frames")
	}
	if !floats.EqualWithinAbs(coeG.Eccentricity, coe.Eccentricity, 1e-9) {
		t.Fatal("eccentricity changed across frames")
	}
	if _, err = obj.COE(LVLH); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("elements in LVLH should fail with InvalidArgument, got %v", err)
	}
}

func TestOrbitalObjectEclipse(t *testing.T) {
	// Anti-sun LEO position: in eclipse.
	prop := &stubPropagator{R: []float64{-7000, 0, 0}, V: []float64{0, -7.5, 0}}
	obj := testObject(t, prop, FixedSunEphemeris{R: []float64{1.496e8, 0, 0}})
	if err := obj.UpdateState(time.Date(2017, 3, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	eclipsed, err := obj.IsInEclipse()
	if err != nil {
		t.Fatal(err)
	}
	if !eclipsed {
		t.Fatal("anti-sun LEO position must be in eclipse")
	}
	// Day side: never in eclipse.
	prop.R = []float64{7000, 0, 0}
	if err = obj.UpdateState(time.Date(2017, 3, 15, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if eclipsed, err = obj.IsInEclipse(); err != nil {
		t.Fatal(err)
	}
	if eclipsed {
		t.Fatal("day side position must not be in eclipse")
	}
}

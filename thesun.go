package astrodyn

import (
	"fmt"
	"time"
)

// TheSun is the Sun as a simulation entity. It carries no state besides its
// epoch: every vector read goes back to the ephemeris.
type TheSun struct {
	name  string
	epoch time.Time
	eph   SunEphemeris
}

// NewTheSun returns the Sun entity backed by the given ephemeris.
func NewTheSun(eph SunEphemeris) (*TheSun, error) {
	if eph == nil {
		return nil, fmt.Errorf("%w: nil ephemeris", ErrInvalidArgument)
	}
	return &TheSun{name: "Sun", eph: eph}, nil
}

// Name implements SimulationObject.
func (s *TheSun) Name() string {
	return s.name
}

// Epoch returns the current epoch, zero before the first UpdateState.
func (s *TheSun) Epoch() time.Time {
	return s.epoch
}

// UpdateState implements SimulationObject.
func (s *TheSun) UpdateState(epoch time.Time) error {
	s.epoch = epoch.UTC()
	return nil
}

// PositionGCRS returns the geocentric Sun position of the current epoch in
// kilometers.
func (s *TheSun) PositionGCRS() ([]float64, error) {
	if s.epoch.IsZero() {
		return nil, fmt.Errorf("%w: no epoch, call UpdateState first", ErrPreconditionUnset)
	}
	return s.eph.SunPositionGCRS(s.epoch)
}

// PositionTEME returns the geocentric Sun position of the current epoch in
// TEME. This rebuilds the frame reduction on every call and is slower than
// the GCRS read.
func (s *TheSun) PositionTEME() ([]float64, error) {
	if s.epoch.IsZero() {
		return nil, fmt.Errorf("%w: no epoch, call UpdateState first", ErrPreconditionUnset)
	}
	return SunPositionTEME(s.eph, s.epoch)
}

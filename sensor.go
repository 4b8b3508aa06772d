package astrodyn

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

// Sensor is a spacecraft-mounted sensor with a fixed boresight in the body
// frame, angular exclusion zones around the Sun and the Earth, a conical
// field of view and an effective range. A Sensor is immutable after
// construction and owned exclusively by the Spacecraft it is mounted on.
type Sensor struct {
	modulePower
	name              string
	boresight         []float64 // unit vector, body frame
	sunExclusionDeg   float64
	earthExclusionDeg float64
	fovHalfAngleDeg   float64
	rangeKm           float64
}

// NewSensor returns a new sensor. The boresight is normalized on input;
// angles are half-angles in degrees and the range is in km.
func NewSensor(name string, boresight []float64, sunExclusionDeg, earthExclusionDeg, fovHalfAngleDeg, rangeKm float64) (*Sensor, error) {
	if len(boresight) != 3 {
		return nil, fmt.Errorf("%w: boresight must have 3 components, not %d", ErrInvalidArgument, len(boresight))
	}
	unit, err := Unit(boresight)
	if err != nil {
		return nil, err
	}
	return &Sensor{
		name:              name,
		boresight:         unit,
		sunExclusionDeg:   sunExclusionDeg,
		earthExclusionDeg: earthExclusionDeg,
		fovHalfAngleDeg:   fovHalfAngleDeg,
		rangeKm:           rangeKm,
	}, nil
}

// Name implements the Module interface.
func (s *Sensor) Name() string { return s.name }

// Boresight returns a copy of the boresight unit vector in the body frame.
func (s *Sensor) Boresight() []float64 {
	b := make([]float64, 3)
	copy(b, s.boresight)
	return b
}

// SunExclusionAngle returns the sun exclusion half-angle in degrees.
func (s *Sensor) SunExclusionAngle() float64 { return s.sunExclusionDeg }

// EarthExclusionAngle returns the earth exclusion half-angle in degrees.
func (s *Sensor) EarthExclusionAngle() float64 { return s.earthExclusionDeg }

// FieldOfViewHalfAngle returns the field-of-view half-angle in degrees.
func (s *Sensor) FieldOfViewHalfAngle() float64 { return s.fovHalfAngleDeg }

// EffectiveRange returns the effective range in km.
func (s *Sensor) EffectiveRange() float64 { return s.rangeKm }

// BoresightAngle rotates the boresight into the target's frame via the
// provided body-to-frame rotation and returns its angle to the target vector
// in degrees.
func (s *Sensor) BoresightAngle(bodyToFrame *mat64.Dense, target []float64) (float64, error) {
	if bodyToFrame == nil {
		return 0, fmt.Errorf("%w: nil body to frame rotation", ErrInvalidArgument)
	}
	rotated := MxV33(bodyToFrame, s.boresight)
	return AngleBetween(rotated, target, UnitDegrees)
}

// ExclusionViolated returns whether the boresight is strictly inside the
// exclusion cone around the given vector. An angle exactly equal to the
// threshold is not a violation: tangency sits just outside the forbidden
// region.
func (s *Sensor) ExclusionViolated(bodyToFrame *mat64.Dense, exclusionVector []float64, exclusionAngleDeg float64) (bool, error) {
	angle, err := s.BoresightAngle(bodyToFrame, exclusionVector)
	if err != nil {
		return false, err
	}
	return angle < exclusionAngleDeg, nil
}

// SunExclusionViolated checks the sensor's sun exclusion zone against the
// spacecraft-to-sun vector expressed in the rotation's target frame.
func (s *Sensor) SunExclusionViolated(bodyToFrame *mat64.Dense, spacecraftToSun []float64) (bool, error) {
	return s.ExclusionViolated(bodyToFrame, spacecraftToSun, s.sunExclusionDeg)
}

// EarthExclusionViolated checks the sensor's earth exclusion zone against the
// spacecraft-to-earth vector expressed in the rotation's target frame.
func (s *Sensor) EarthExclusionViolated(bodyToFrame *mat64.Dense, spacecraftToEarth []float64) (bool, error) {
	return s.ExclusionViolated(bodyToFrame, spacecraftToEarth, s.earthExclusionDeg)
}

// InFieldOfView returns whether the target is strictly inside the sensor's
// field-of-view cone.
func (s *Sensor) InFieldOfView(bodyToFrame *mat64.Dense, target []float64) (bool, error) {
	angle, err := s.BoresightAngle(bodyToFrame, target)
	if err != nil {
		return false, err
	}
	return angle < s.fovHalfAngleDeg, nil
}

// InRange returns whether the target is within the sensor's effective range.
// The boundary itself is usable, so the comparison is inclusive, deliberately
// asymmetric with the strict angular tests.
func (s *Sensor) InRange(target []float64) bool {
	return Norm(target) <= s.rangeKm
}

// IsAccessible returns whether the target is both in the field of view and
// in range.
func (s *Sensor) IsAccessible(bodyToFrame *mat64.Dense, target []float64) (bool, error) {
	inFOV, err := s.InFieldOfView(bodyToFrame, target)
	if err != nil {
		return false, err
	}
	return inFOV && s.InRange(target), nil
}

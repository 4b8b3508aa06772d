package astrodyn

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

// Spacecraft is an OrbitalObject with an attitude and mounted sensors. The
// attitude is the rotation from the body frame to GCRS; it defaults to
// unset, which is distinct from identity: body and LVLH frame queries are
// meaningless without it and fail rather than assume an alignment.
type Spacecraft struct {
	*OrbitalObject
	bodyToGCRS *mat64.Dense
	sensors    []*Sensor // mount order
}

// NewSpacecraft returns a spacecraft with no attitude and no sensors.
func NewSpacecraft(name string, tle *TLE, prop Propagator, eph SunEphemeris) (*Spacecraft, error) {
	obj, err := NewOrbitalObject(name, tle, prop, eph)
	if err != nil {
		return nil, err
	}
	return &Spacecraft{OrbitalObject: obj}, nil
}

// SetBodyToGCRSRotation sets the body frame attitude.
func (s *Spacecraft) SetBodyToGCRSRotation(m *mat64.Dense) error {
	if m == nil {
		return fmt.Errorf("%w: nil attitude rotation", ErrInvalidArgument)
	}
	if r, c := m.Dims(); r != 3 || c != 3 {
		return fmt.Errorf("%w: attitude rotation must be 3x3, got %dx%d", ErrInvalidArgument, r, c)
	}
	s.bodyToGCRS = mat64.DenseCopyOf(m)
	return nil
}

// BodyToGCRSRotation returns the attitude, or PreconditionUnset if none has
// been established.
func (s *Spacecraft) BodyToGCRSRotation() (*mat64.Dense, error) {
	if s.bodyToGCRS == nil {
		return nil, fmt.Errorf("%w: no attitude set", ErrPreconditionUnset)
	}
	return mat64.DenseCopyOf(s.bodyToGCRS), nil
}

// BodyToLVLHRotation composes the attitude with the LVLH rotation derived
// from the GCRS state of the current epoch.
func (s *Spacecraft) BodyToLVLHRotation() (*mat64.Dense, error) {
	if s.bodyToGCRS == nil {
		return nil, fmt.Errorf("%w: no attitude set", ErrPreconditionUnset)
	}
	r, v, err := s.StateGCRS()
	if err != nil {
		return nil, err
	}
	return BodyToLVLH(s.bodyToGCRS, r, v)
}

// lvlhOfGCRS returns the rotation mapping GCRS vectors into the LVLH frame
// of the current epoch. It does not need the attitude.
func (s *Spacecraft) lvlhOfGCRS() (*mat64.Dense, error) {
	r, v, err := s.StateGCRS()
	if err != nil {
		return nil, err
	}
	return LVLHRotation(r, v)
}

// EarthVector returns the spacecraft-to-Earth vector in the requested frame
// at the current epoch, in kilometers.
func (s *Spacecraft) EarthVector(frame Frame) ([]float64, error) {
	switch frame {
	case TEME:
		r, err := s.PositionTEME()
		if err != nil {
			return nil, err
		}
		return neg(r), nil
	case GCRS:
		r, err := s.PositionGCRS()
		if err != nil {
			return nil, err
		}
		return neg(r), nil
	case LVLH:
		r, err := s.PositionGCRS()
		if err != nil {
			return nil, err
		}
		lvlh, err := s.lvlhOfGCRS()
		if err != nil {
			return nil, err
		}
		return MxV33(lvlh, neg(r)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported frame %s", ErrInvalidArgument, frame)
	}
}

// SunVector returns the spacecraft-to-Sun vector in the requested frame at
// the current epoch, in kilometers.
func (s *Spacecraft) SunVector(frame Frame) ([]float64, error) {
	if !s.hasState {
		return nil, fmt.Errorf("%w: no state, call UpdateState first", ErrPreconditionUnset)
	}
	switch frame {
	case TEME:
		rSun, err := SunPositionTEME(s.eph, s.epoch)
		if err != nil {
			return nil, err
		}
		r, err := s.PositionTEME()
		if err != nil {
			return nil, err
		}
		return []float64{rSun[0] - r[0], rSun[1] - r[1], rSun[2] - r[2]}, nil
	case GCRS, LVLH:
		rSun, err := s.eph.SunPositionGCRS(s.epoch)
		if err != nil {
			return nil, err
		}
		r, err := s.PositionGCRS()
		if err != nil {
			return nil, err
		}
		rel := []float64{rSun[0] - r[0], rSun[1] - r[1], rSun[2] - r[2]}
		if frame == GCRS {
			return rel, nil
		}
		lvlh, err := s.lvlhOfGCRS()
		if err != nil {
			return nil, err
		}
		return MxV33(lvlh, rel), nil
	default:
		return nil, fmt.Errorf("%w: unsupported frame %s", ErrInvalidArgument, frame)
	}
}

// AddSensor mounts a sensor. Mount order is preserved for reporting.
func (s *Spacecraft) AddSensor(sensor *Sensor) error {
	if sensor == nil {
		return fmt.Errorf("%w: nil sensor", ErrInvalidArgument)
	}
	s.sensors = append(s.sensors, sensor)
	return nil
}

// Sensors returns the mounted sensors in mount order.
func (s *Spacecraft) Sensors() []*Sensor {
	out := make([]*Sensor, len(s.sensors))
	copy(out, s.sensors)
	return out
}

// sensorFrameRotation resolves the body-to-frame rotation used by the
// exclusion checks. GCRS and LVLH derive it from the spacecraft's own
// attitude and state. TEME has no default inertial attitude here, so the
// caller must supply the rotation explicitly.
func (s *Spacecraft) sensorFrameRotation(frame Frame, bodyToFrame *mat64.Dense) (*mat64.Dense, error) {
	switch frame {
	case TEME:
		if bodyToFrame == nil {
			return nil, fmt.Errorf("%w: TEME exclusion checks need an explicit body to TEME rotation", ErrPreconditionUnset)
		}
		return bodyToFrame, nil
	case GCRS:
		return s.BodyToGCRSRotation()
	case LVLH:
		return s.BodyToLVLHRotation()
	default:
		return nil, fmt.Errorf("%w: unsupported frame %s", ErrInvalidArgument, frame)
	}
}

// CheckSensorSunExclusionZones returns the names, in mount order, of the
// sensors whose Sun exclusion zone is violated in the requested frame.
func (s *Spacecraft) CheckSensorSunExclusionZones(frame Frame, bodyToFrame *mat64.Dense) ([]string, error) {
	rot, err := s.sensorFrameRotation(frame, bodyToFrame)
	if err != nil {
		return nil, err
	}
	sunVec, err := s.SunVector(frame)
	if err != nil {
		return nil, err
	}
	violated := []string{}
	for _, sensor := range s.sensors {
		hit, err := sensor.SunExclusionViolated(rot, sunVec)
		if err != nil {
			return nil, err
		}
		if hit {
			violated = append(violated, sensor.Name())
		}
	}
	return violated, nil
}

// CheckSensorEarthExclusionZones returns the names, in mount order, of the
// sensors whose Earth exclusion zone is violated in the requested frame.
func (s *Spacecraft) CheckSensorEarthExclusionZones(frame Frame, bodyToFrame *mat64.Dense) ([]string, error) {
	rot, err := s.sensorFrameRotation(frame, bodyToFrame)
	if err != nil {
		return nil, err
	}
	earthVec, err := s.EarthVector(frame)
	if err != nil {
		return nil, err
	}
	violated := []string{}
	for _, sensor := range s.sensors {
		hit, err := sensor.EarthExclusionViolated(rot, earthVec)
		if err != nil {
			return nil, err
		}
		if hit {
			violated = append(violated, sensor.Name())
		}
	}
	return violated, nil
}

// CheckSensorSunAndEarthExclusionZones runs both exclusion checks with a
// single rotation resolution. With frame set to TEME, both checks use the
// supplied rotation.
func (s *Spacecraft) CheckSensorSunAndEarthExclusionZones(frame Frame, bodyToFrame *mat64.Dense) (sun, earth []string, err error) {
	sun, err = s.CheckSensorSunExclusionZones(frame, bodyToFrame)
	if err != nil {
		return nil, nil, err
	}
	earth, err = s.CheckSensorEarthExclusionZones(frame, bodyToFrame)
	if err != nil {
		return nil, nil, err
	}
	return sun, earth, nil
}

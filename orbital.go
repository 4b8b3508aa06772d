package astrodyn

import (
	"fmt"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// OrbitalObject is any Earth-orbiting object tracked by a two-line element
// set. Its inertial state is anchored to an explicit epoch: all geometric
// reads answer for the epoch of the latest UpdateState call, never for wall
// clock time.
type OrbitalObject struct {
	name   string
	tle    *TLE
	prop   Propagator
	eph    SunEphemeris
	logger kitlog.Logger

	epoch    time.Time // UTC, zero until the first UpdateState
	rTEME    []float64
	vTEME    []float64
	hasState bool
}

// NewOrbitalObject returns an object whose state is propagated with the
// given propagator and whose eclipse geometry uses the given Sun ephemeris.
// The state is unset until UpdateState is called.
func NewOrbitalObject(name string, tle *TLE, prop Propagator, eph SunEphemeris) (*OrbitalObject, error) {
	if tle == nil {
		return nil, fmt.Errorf("%w: nil TLE", ErrInvalidArgument)
	}
	if prop == nil || eph == nil {
		return nil, fmt.Errorf("%w: nil propagator or ephemeris", ErrInvalidArgument)
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "object", name)
	return &OrbitalObject{name: name, tle: tle, prop: prop, eph: eph, logger: klog}, nil
}

// Name implements SimulationObject.
func (o *OrbitalObject) Name() string {
	return o.name
}

// TLE returns the element set backing this object.
func (o *OrbitalObject) TLE() *TLE {
	return o.tle
}

// NoradID returns the catalog number of the element set.
func (o *OrbitalObject) NoradID() int {
	return o.tle.NoradID
}

// Epoch returns the epoch of the current state, zero before the first
// UpdateState.
func (o *OrbitalObject) Epoch() time.Time {
	return o.epoch
}

// UpdateState implements SimulationObject. The epoch is normalized to UTC
// and the TEME state cache is overwritten. On propagation failure the
// previous state is kept.
func (o *OrbitalObject) UpdateState(epoch time.Time) error {
	epoch = epoch.UTC()
	r, v, err := o.prop.PropagateTEME(epoch)
	if err != nil {
		o.logger.Log("epoch", epoch.Format(time.RFC3339), "error", err)
		return err
	}
	o.epoch = epoch
	o.rTEME = r
	o.vTEME = v
	o.hasState = true
	return nil
}

// PositionTEME returns a copy of the cached TEME position in kilometers.
func (o *OrbitalObject) PositionTEME() ([]float64, error) {
	if !o.hasState {
		return nil, fmt.Errorf("%w: no state, call UpdateState first", ErrPreconditionUnset)
	}
	return []float64{o.rTEME[0], o.rTEME[1], o.rTEME[2]}, nil
}

// VelocityTEME returns a copy of the cached TEME velocity in km/s.
func (o *OrbitalObject) VelocityTEME() ([]float64, error) {
	if !o.hasState {
		return nil, fmt.Errorf("%w: no state, call UpdateState first", ErrPreconditionUnset)
	}
	return []float64{o.vTEME[0], o.vTEME[1], o.vTEME[2]}, nil
}

// StateGCRS rotates the state of the current epoch into GCRS. The reduction
// matrix is rebuilt on every call, so this is slower than the TEME reads.
func (o *OrbitalObject) StateGCRS() (r, v []float64, err error) {
	if !o.hasState {
		return nil, nil, fmt.Errorf("%w: no state, call UpdateState first", ErrPreconditionUnset)
	}
	m := TEMEToGCRS(o.epoch)
	return MxV33(m, o.rTEME), MxV33(m, o.vTEME), nil
}

// PositionGCRS returns the GCRS position of the current epoch.
func (o *OrbitalObject) PositionGCRS() ([]float64, error) {
	r, _, err := o.StateGCRS()
	return r, err
}

// VelocityGCRS returns the GCRS velocity of the current epoch.
func (o *OrbitalObject) VelocityGCRS() ([]float64, error) {
	_, v, err := o.StateGCRS()
	return v, err
}

// COE converts the state of the current epoch, expressed in the requested
// frame, to classical orbital elements.
func (o *OrbitalObject) COE(frame Frame) (ClassicalOrbitalElements, error) {
	var r, v []float64
	var err error
	switch frame {
	case TEME:
		if r, err = o.PositionTEME(); err != nil {
			return ClassicalOrbitalElements{}, err
		}
		if v, err = o.VelocityTEME(); err != nil {
			return ClassicalOrbitalElements{}, err
		}
	case GCRS:
		if r, v, err = o.StateGCRS(); err != nil {
			return ClassicalOrbitalElements{}, err
		}
	default:
		return ClassicalOrbitalElements{}, fmt.Errorf("%w: elements undefined in frame %s", ErrInvalidArgument, frame)
	}
	return StateVectorsToCOE(r, v)
}

// SunPositionTEME returns the Sun vector of the current epoch in TEME.
func (o *OrbitalObject) SunPositionTEME() ([]float64, error) {
	if !o.hasState {
		return nil, fmt.Errorf("%w: no state, call UpdateState first", ErrPreconditionUnset)
	}
	return SunPositionTEME(o.eph, o.epoch)
}

// IsInEclipse returns whether the object sits in the umbra or penumbra of
// the Earth at the current epoch.
func (o *OrbitalObject) IsInEclipse() (bool, error) {
	rSun, err := o.SunPositionTEME()
	if err != nil {
		return false, err
	}
	r, err := o.PositionTEME()
	if err != nil {
		return false, err
	}
	return IsInEclipse(r, rSun), nil
}

package astrodyn

import (
	"fmt"
	"math"
	"time"

	"github.com/joshuaferrara/go-satellite"
)

// Propagator computes position and velocity in the TEME frame at a given UTC
// epoch. Position is in kilometers, velocity in kilometers per second.
type Propagator interface {
	PropagateTEME(epoch time.Time) (r, v []float64, err error)
}

// SGP4 propagates a two-line element set with the SGP4/SDP4 analytic theory
// and WGS-72 gravity constants. The output frame is TEME of epoch, which is
// native to the theory.
type SGP4 struct {
	tle *TLE
	sat satellite.Satellite
}

// NewSGP4 initializes the propagator from a validated TLE.
func NewSGP4(tle *TLE) (*SGP4, error) {
	if tle == nil {
		return nil, fmt.Errorf("%w: nil TLE", ErrInvalidArgument)
	}
	sat := satellite.TLEToSat(tle.Line1, tle.Line2, satellite.GravityWGS72)
	return &SGP4{tle: tle, sat: sat}, nil
}

// PropagateTEME implements Propagator. A NaN in the output means the theory
// diverged (decayed orbit or epoch far outside the element set validity) and
// is reported as an error rather than returned.
func (p *SGP4) PropagateTEME(epoch time.Time) (r, v []float64, err error) {
	t := epoch.UTC()
	pos, vel := satellite.Propagate(p.sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	r = []float64{pos.X, pos.Y, pos.Z}
	v = []float64{vel.X, vel.Y, vel.Z}
	for i := 0; i < 3; i++ {
		if math.IsNaN(r[i]) || math.IsNaN(v[i]) {
			return nil, nil, fmt.Errorf("%w: SGP4 diverged at %s", ErrInvalidArgument, t.Format(time.RFC3339))
		}
	}
	return r, v, nil
}

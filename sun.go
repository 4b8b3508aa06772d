package astrodyn

import (
	"fmt"
	"math"
	"time"

	"github.com/mshafiee/jpleph"
	"github.com/pkg/errors"
	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
)

// ε0J2000 is the mean obliquity of the ecliptic at J2000.0 in radians.
const ε0J2000 = 23.439291111 * deg2rad

// SunEphemeris returns the geocentric position of the Sun in the GCRS frame
// at a given UTC epoch, in kilometers.
type SunEphemeris interface {
	SunPositionGCRS(epoch time.Time) ([]float64, error)
}

// SunPositionTEME rotates an ephemeris output into the TEME frame of the
// requested epoch.
func SunPositionTEME(eph SunEphemeris, epoch time.Time) ([]float64, error) {
	rGCRS, err := eph.SunPositionGCRS(epoch)
	if err != nil {
		return nil, err
	}
	return MxV33(GCRSToTEME(epoch), rGCRS), nil
}

// VSOP87Ephemeris computes the Sun position from the VSOP87 analytic theory.
// The Earth heliocentric position is negated and rotated from the ecliptic
// to the equatorial J2000 frame.
type VSOP87Ephemeris struct {
	earth *planetposition.V87Planet
}

// NewVSOP87Ephemeris loads the VSOP87 Earth series from the given directory.
func NewVSOP87Ephemeris(dir string) (*VSOP87Ephemeris, error) {
	planet, err := planetposition.LoadPlanetPath(planetposition.Earth, dir)
	if err != nil {
		return nil, errors.Wrap(err, "could not load VSOP87 Earth series")
	}
	return &VSOP87Ephemeris{earth: planet}, nil
}

// SunPositionGCRS implements SunEphemeris.
func (e *VSOP87Ephemeris) SunPositionGCRS(epoch time.Time) ([]float64, error) {
	l, b, r := e.earth.Position2000(julian.TimeToJD(epoch.UTC()))
	r *= AU
	sB, cB := math.Sincos(b.Rad())
	sL, cL := math.Sincos(l.Rad())
	// Geocentric Sun is the negated heliocentric Earth.
	ecl := []float64{-r * cB * cL, -r * cB * sL, -r * sB}
	return MxV33(R1(-ε0J2000), ecl), nil
}

// DEEphemeris computes the Sun position by interpolating a JPL Development
// Ephemeris binary file. DE output is already referred to the ICRF, which is
// taken as GCRS here.
type DEEphemeris struct {
	eph *jpleph.Ephemeris
}

// NewDEEphemeris opens the binary ephemeris file at the given path.
func NewDEEphemeris(path string) (*DEEphemeris, error) {
	eph, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open DE file %s", path)
	}
	return &DEEphemeris{eph: eph}, nil
}

// SunPositionGCRS implements SunEphemeris.
func (e *DEEphemeris) SunPositionGCRS(epoch time.Time) ([]float64, error) {
	pos, _, err := e.eph.CalculatePV(julian.TimeToJD(epoch.UTC()), jpleph.Sun, jpleph.CenterEarth, false)
	if err != nil {
		return nil, errors.Wrapf(err, "DE interpolation failed at %s", epoch.Format(time.RFC3339))
	}
	return []float64{pos.X * AU, pos.Y * AU, pos.Z * AU}, nil
}

// Close releases the underlying DE file handle.
func (e *DEEphemeris) Close() error {
	return e.eph.Close()
}

// FixedSunEphemeris always returns the same GCRS vector. It serves scenarios
// where the Sun direction is prescribed rather than computed.
type FixedSunEphemeris struct {
	R []float64
}

// SunPositionGCRS implements SunEphemeris.
func (e FixedSunEphemeris) SunPositionGCRS(time.Time) ([]float64, error) {
	if len(e.R) != 3 {
		return nil, fmt.Errorf("%w: fixed Sun vector must have three components", ErrInvalidArgument)
	}
	return []float64{e.R[0], e.R[1], e.R[2]}, nil
}

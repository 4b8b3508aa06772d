package astrodyn

import (
	"fmt"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/nutation"
)

// Frame identifies a reference frame for state vectors and geometry queries.
type Frame uint8

const (
	// TEME is the True Equator Mean Equinox frame, native output of SGP4.
	TEME Frame = iota + 1
	// GCRS is the Geocentric Celestial Reference System, native output of
	// the ephemeris collaborator.
	GCRS
	// LVLH is the Local-Vertical-Local-Horizontal frame of an orbiting
	// object, derived from its instantaneous position and velocity.
	LVLH
)

func (f Frame) String() string {
	switch f {
	case TEME:
		return "TEME"
	case GCRS:
		return "GCRS"
	case LVLH:
		return "LVLH"
	}
	return fmt.Sprintf("Frame(%d)", uint8(f))
}

// ParseFrame returns the frame for a given token.
func ParseFrame(token string) (Frame, error) {
	switch token {
	case "TEME":
		return TEME, nil
	case "GCRS":
		return GCRS, nil
	case "LVLH":
		return LVLH, nil
	default:
		return 0, fmt.Errorf("%w: unknown frame token %q", ErrInvalidArgument, token)
	}
}

const sec2rad = deg2rad / 3600 // arcseconds to radians

// TEMEToGCRS returns the rotation from TEME to GCRS at the given epoch,
// built per the IAU-76/FK5 reduction: equation of the equinoxes to the true
// equator/equinox of date, the nutation matrix to the mean equator of date,
// and precession to J2000.
func TEMEToGCRS(epoch time.Time) *mat64.Dense {
	jde := julian.TimeToJD(epoch.UTC())
	T := (jde - 2451545.0) / 36525.0

	// Precession angles, IAU-76 (arcseconds).
	ζ := (2306.2181 + (0.30188+0.017998*T)*T) * T * sec2rad
	z := (2306.2181 + (1.09468+0.018203*T)*T) * T * sec2rad
	θ := (2004.3109 - (0.42665+0.041833*T)*T) * T * sec2rad

	Δψ, Δε := nutation.Nutation(jde)
	ε0 := nutation.MeanObliquity(jde)
	ε := ε0.Rad() + Δε.Rad()
	eqeq := nutation.NutationInRA(jde).Rad()

	// TEME -> true of date -> mean of date -> J2000.
	var m mat64.Dense
	m.Mul(R1(ε), R3(-eqeq))
	m.Mul(R3(Δψ.Rad()), &m)
	m.Mul(R1(-ε0.Rad()), &m)
	m.Mul(R3(z), &m)
	m.Mul(R2(-θ), &m)
	m.Mul(R3(ζ), &m)
	return &m
}

// GCRSToTEME returns the rotation from GCRS to TEME at the given epoch.
func GCRSToTEME(epoch time.Time) *mat64.Dense {
	var m mat64.Dense
	m.Clone(TEMEToGCRS(epoch).T())
	return &m
}

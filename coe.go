package astrodyn

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// ClassicalOrbitalElements holds the full Keplerian element set derived from
// a single state vector pair. All angles are in radians. The set is derived
// data: it is recomputed on request and never stored as ground truth.
type ClassicalOrbitalElements struct {
	SemilatusRectum      float64 // p, km
	SemimajorAxis        float64 // a, km
	Eccentricity         float64
	Inclination          float64 // i
	RAAN                 float64 // Ω
	ArgumentOfPerigee    float64 // ω
	TrueAnomaly          float64 // ν
	MeanAnomaly          float64 // M
	ArgumentOfLatitude   float64 // u = ω + ν
	TrueLongitude        float64 // λ = Ω + ω + ν
	LongitudeOfPeriapsis float64 // tildeω = Ω + ω
}

// String implements the Stringer interface.
func (coe ClassicalOrbitalElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", coe.SemimajorAxis, coe.Eccentricity,
		Rad2deg(coe.Inclination), Rad2deg(coe.RAAN), Rad2deg(coe.ArgumentOfPerigee), Rad2deg(coe.TrueAnomaly))
}

// StateVectorsToCOE converts an Earth-centered inertial state vector pair to
// classical orbital elements, following Vallado's RV2COE (page 113). R is in
// kilometers, V in kilometers per second.
func StateVectorsToCOE(R, V []float64) (ClassicalOrbitalElements, error) {
	var coe ClassicalOrbitalElements
	if len(R) != 3 || len(V) != 3 {
		return coe, fmt.Errorf("%w: R and V must have three components", ErrInvalidArgument)
	}
	μ := Earth.GM()
	hVec := cross(R, V)
	h := Norm(hVec)
	r := Norm(R)
	v := Norm(V)
	if floats.EqualWithinAbs(r, 0, 1e-12) || floats.EqualWithinAbs(h, 0, 1e-12) {
		return coe, fmt.Errorf("%w: degenerate state vectors", ErrGeometricSingularity)
	}
	n := cross([]float64{0, 0, 1}, hVec)
	ξ := (v*v)/2 - μ/r
	a := -μ / (2 * ξ)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-μ/r)*R[i] - dot(R, V)*V[i]) / μ
	}
	e := Norm(eVec)
	i := math.Acos(hVec[2] / h)
	ω := math.Acos(dot(n, eVec) / (Norm(n) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(n[0] / Norm(n))
	if math.IsNaN(Ω) {
		Ω = 0
	}
	if n[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(eVec, R) / (e * r)
	if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
		cosν = math.Copysign(1, cosν)
	}
	ν := math.Acos(cosν)
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	// Fix rounding errors.
	i = math.Mod(i, 2*math.Pi)
	Ω = math.Mod(Ω, 2*math.Pi)
	ω = math.Mod(ω, 2*math.Pi)
	ν = math.Mod(ν, 2*math.Pi)

	// Mean anomaly via the eccentric anomaly trig functions.
	sinν, cosνE := math.Sincos(ν)
	denom := 1 + e*cosνE
	sinE := math.Sqrt(1-e*e) * sinν / denom
	cosE := (e + cosνE) / denom
	E := math.Atan2(sinE, cosE)
	M := math.Mod(E-e*sinE, 2*math.Pi)
	if M < 0 {
		M += 2 * math.Pi
	}

	coe = ClassicalOrbitalElements{
		SemilatusRectum:      a * (1 - e*e),
		SemimajorAxis:        a,
		Eccentricity:         e,
		Inclination:          i,
		RAAN:                 Ω,
		ArgumentOfPerigee:    ω,
		TrueAnomaly:          ν,
		MeanAnomaly:          M,
		ArgumentOfLatitude:   math.Mod(ν+ω, 2*math.Pi),
		TrueLongitude:        math.Mod(ω+Ω+ν, 2*math.Pi),
		LongitudeOfPeriapsis: math.Mod(ω+Ω, 2*math.Pi),
	}
	for _, val := range []float64{coe.SemimajorAxis, coe.Eccentricity, coe.Inclination, coe.RAAN, coe.ArgumentOfPerigee, coe.TrueAnomaly, coe.MeanAnomaly} {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ClassicalOrbitalElements{}, fmt.Errorf("%w: element conversion diverged", ErrGeometricSingularity)
		}
	}
	return coe, nil
}

package astrodyn

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Angle unit tokens accepted by AngleBetween.
const (
	UnitRadians = "radians"
	UnitDegrees = "degrees"
)

// Norm returns the Euclidean norm of a given vector.
func Norm(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Unit returns the unit vector of a given vector.
func Unit(a []float64) ([]float64, error) {
	n := Norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return nil, fmt.Errorf("%w: cannot normalize a zero vector", ErrDivideByZero)
	}
	b := make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return b, nil
}

// AngleBetween returns the angle between two vectors in the requested unit
// (UnitRadians or UnitDegrees). It uses the half-angle formulation
// 2*atan2(‖‖b‖a − ‖a‖b‖, ‖‖b‖a + ‖a‖b‖), which stays well conditioned near 0
// and π where the acos-of-dot-product formula loses precision.
func AngleBetween(a, b []float64, unit string) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: vectors of length %d and %d", ErrInvalidArgument, len(a), len(b))
	}
	angle := angleBetween(a, b)
	switch unit {
	case UnitRadians:
		return angle, nil
	case UnitDegrees:
		return angle * rad2deg, nil
	default:
		return 0, fmt.Errorf("%w: unknown angle unit %q", ErrInvalidArgument, unit)
	}
}

// angleBetween is the radians-only half-angle computation, shared by the
// eclipse and sensor geometry which always pass validated vectors.
func angleBetween(a, b []float64) float64 {
	nA := Norm(a)
	nB := Norm(b)
	diff := make([]float64, len(a))
	sum := make([]float64, len(a))
	for i := range a {
		diff[i] = nB*a[i] - nA*b[i]
		sum[i] = nB*a[i] + nA*b[i]
	}
	return 2 * math.Atan2(Norm(diff), Norm(sum))
}

// dot performs the inner product.
func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]} // Cross product R x V.
}

// neg returns the opposite vector.
func neg(a []float64) []float64 {
	b := make([]float64, len(a))
	for i, val := range a {
		b[i] = -val
	}
	return b
}

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

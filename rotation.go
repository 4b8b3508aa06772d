package astrodyn

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a 3x3 matrix with a 3-vector.
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// LVLHRotation builds the rotation from an inertial frame into the
// Local-Vertical-Local-Horizontal frame of the object whose inertial position
// and velocity are given. The basis is x = unit(R) (radial, Earth to object),
// z = unit(R×V) (orbit normal), y = z×x completing the right-handed triad.
// Applying the returned matrix to an inertial vector yields its LVLH
// coordinates.
func LVLHRotation(R, V []float64) (*mat64.Dense, error) {
	if len(R) != 3 {
		return nil, fmt.Errorf("%w: position must have 3 components, not %d", ErrInvalidArgument, len(R))
	}
	if len(V) != 3 {
		return nil, fmt.Errorf("%w: velocity must have 3 components, not %d", ErrInvalidArgument, len(V))
	}
	h := cross(R, V)
	if floats.EqualWithinAbs(Norm(h), 0, 1e-12) {
		return nil, fmt.Errorf("%w: position and velocity are parallel", ErrGeometricSingularity)
	}
	x, err := Unit(R)
	if err != nil {
		return nil, err
	}
	z, err := Unit(h)
	if err != nil {
		return nil, err
	}
	y := cross(z, x)
	return mat64.NewDense(3, 3, []float64{
		x[0], x[1], x[2],
		y[0], y[1], y[2],
		z[0], z[1], z[2]}), nil
}

// BodyToLVLH composes a body-to-inertial rotation with the LVLH rotation of
// the given inertial state, yielding the body-to-LVLH rotation.
func BodyToLVLH(bodyToInertial *mat64.Dense, R, V []float64) (*mat64.Dense, error) {
	if bodyToInertial == nil {
		return nil, fmt.Errorf("%w: no body to inertial rotation established", ErrPreconditionUnset)
	}
	lvlh, err := LVLHRotation(R, V)
	if err != nil {
		return nil, err
	}
	var composed mat64.Dense
	composed.Mul(lvlh, bodyToInertial)
	return &composed, nil
}

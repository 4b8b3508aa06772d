package astrodyn

import "math"

// CheckObjectShadows determines whether an Earth-orbiting object is inside
// the umbra and/or penumbra cones cast by the Earth. Both vectors must be
// Earth-centered and expressed in the same inertial frame; mixing frames is
// a caller error this function does not detect.
//
// The shadow model is conical: the penumbra cone widens away from the Sun
// and the umbra cone narrows, eventually closing (always the case for
// Earth/Sun geometry). An object exactly on the terminator plane is
// classified as not shadowed.
func CheckObjectShadows(objectPosition, sunPosition []float64) (inUmbra, inPenumbra bool) {
	earthSunDistance := Norm(sunPosition)
	umbraAngle := math.Atan((Sun.Radius - Earth.Radius) / earthSunDistance)
	penumbraAngle := math.Atan((Sun.Radius + Earth.Radius) / earthSunDistance)

	// Only the night side can be shadowed.
	if dot(objectPosition, sunPosition) >= 0 {
		return false, false
	}

	angle := angleBetween(neg(sunPosition), objectPosition)
	objHoriz := Norm(objectPosition) * math.Cos(angle)
	objVert := Norm(objectPosition) * math.Sin(angle)

	x := Earth.Radius / math.Sin(penumbraAngle)
	penVert := math.Tan(penumbraAngle) * (x + objHoriz)
	if objVert <= penVert {
		inPenumbra = true
		y := Earth.Radius / math.Sin(umbraAngle)
		umbVert := math.Tan(umbraAngle) * (y - objHoriz)
		if objVert <= umbVert {
			inUmbra = true
		}
	}
	return
}

// IsInEclipse returns whether the object is in either umbra or penumbra.
func IsInEclipse(objectPosition, sunPosition []float64) bool {
	inUmbra, inPenumbra := CheckObjectShadows(objectPosition, sunPosition)
	return inUmbra || inPenumbra
}

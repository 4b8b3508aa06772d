package astrodyn

import "testing"

// The Sun sits along +X at a realistic distance for all cases here, so the
// shadow axis is -X.
var sunPos = []float64{1.496e8, 0, 0}

func TestEclipseDaySide(t *testing.T) {
	for _, R := range [][]float64{
		{7000, 0, 0},
		{42164, 100, -300},
		{1e6, 5000, 0},
	} {
		umbra, penumbra := CheckObjectShadows(R, sunPos)
		if umbra || penumbra {
			t.Fatalf("day side position %+v cannot be shadowed", R)
		}
	}
}

func TestEclipseNightSide(t *testing.T) {
	// A LEO radius on the anti-sun axis is deep in the umbra.
	umbra, penumbra := CheckObjectShadows([]float64{-7000, 0, 0}, sunPos)
	if !umbra || !penumbra {
		t.Fatalf("anti-sun LEO position must be in umbra and penumbra (got %v, %v)", umbra, penumbra)
	}
	// Same distance but well off axis: sunlit night side.
	umbra, penumbra = CheckObjectShadows([]float64{-7000, 42000, 0}, sunPos)
	if umbra || penumbra {
		t.Fatal("off-axis night side position must not be shadowed")
	}
	// Near the geocenter the shadow cones are widest.
	umbra, penumbra = CheckObjectShadows([]float64{-1e-6, 0, 0}, sunPos)
	if !umbra || !penumbra {
		t.Fatal("position at the center of the Earth must be in umbra and penumbra")
	}
}

func TestEclipseTerminator(t *testing.T) {
	// On the terminator plane the dot product is exactly zero and the tie
	// goes to not-in-eclipse.
	if IsInEclipse([]float64{0, 6578, 0}, sunPos) {
		t.Fatal("terminator plane position must not be in eclipse")
	}
	if IsInEclipse([]float64{0, 0, 0}, sunPos) {
		t.Fatal("the exact geocenter has a zero dot product and must not be in eclipse")
	}
}

func TestEclipseUmbraOnly(t *testing.T) {
	// Past the umbra cone vertex (~1.385e6 km) only the penumbra remains.
	umbra, penumbra := CheckObjectShadows([]float64{-1.5e6, 0, 0}, sunPos)
	if umbra {
		t.Fatal("umbra cone closes before 1.5e6 km")
	}
	if !penumbra {
		t.Fatal("anti-sun axis past the umbra vertex is still in penumbra")
	}
}

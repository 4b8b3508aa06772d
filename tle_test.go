package astrodyn

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestParseTLELines(t *testing.T) {
	tle, err := ParseTLELines(issLine1, issLine2)
	if err != nil {
		t.Fatal(err)
	}
	if tle.NoradID != 25544 {
		t.Fatalf("incorrect catalog number %d", tle.NoradID)
	}
	// Epoch 08264.51782528 is 2008-09-20 12:25:40 UTC.
	exp := time.Date(2008, 9, 20, 12, 25, 40, 0, time.UTC)
	if diff := tle.Epoch.Sub(exp); diff > time.Second || diff < -time.Second {
		t.Fatalf("incorrect epoch %s", tle.Epoch)
	}
	if tle.Line1 != issLine1 || tle.Line2 != issLine2 {
		t.Fatal("raw lines not kept")
	}
}

func TestParseTLELinesErrors(t *testing.T) {
	cases := []struct {
		name  string
		line1 string
		line2 string
	}{
		{"short line", issLine1[:40], issLine2},
		{"swapped lines", issLine2, issLine1},
		{"bad line number", "3" + issLine1[1:], issLine2},
		{"bad checksum", issLine1[:68] + "0", issLine2},
		{"catalog mismatch", issLine1, strings.Replace(issLine2, "25544", "25545", 1)},
	}
	for _, tc := range cases {
		if _, err := ParseTLELines(tc.line1, tc.line2); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected InvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestTLEChecksum(t *testing.T) {
	// Digits count as themselves, minus signs as one, all else as zero.
	if tleChecksum("1 25544U") != (1+2+5+5+4+4)%10 {
		t.Fatal("checksum over digits invalid")
	}
	if tleChecksum("---") != 3 {
		t.Fatal("minus signs must count as one")
	}
}

func TestTLEEpochYearPivot(t *testing.T) {
	// Years 57-99 are in the 1900s, 00-56 in the 2000s.
	early, err := parseTLEEpoch("57001.00000000")
	if err != nil {
		t.Fatal(err)
	}
	if early.Year() != 1957 {
		t.Fatalf("expected 1957, got %d", early.Year())
	}
	late, err := parseTLEEpoch("56001.00000000")
	if err != nil {
		t.Fatal(err)
	}
	if late.Year() != 2056 {
		t.Fatalf("expected 2056, got %d", late.Year())
	}
}

package astrodyn

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// tleLineLength is the fixed length of a TLE line, checksum included.
const tleLineLength = 69

// TLE holds a validated Two-Line Element set. Only the fields the simulation
// needs are extracted; the raw lines are kept verbatim for the propagator.
type TLE struct {
	Line1   string
	Line2   string
	NoradID int       // catalog number, shared by both lines
	Epoch   time.Time // element set epoch, UTC
}

// ParseTLELines validates a TLE line pair: line lengths, leading line
// numbers, modulo-10 checksums and matching catalog numbers. The element set
// epoch is extracted from line 1.
func ParseTLELines(line1, line2 string) (*TLE, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if len(line1) < tleLineLength || len(line2) < tleLineLength {
		return nil, fmt.Errorf("%w: TLE lines must be %d characters", ErrInvalidArgument, tleLineLength)
	}
	if line1[0] != '1' {
		return nil, fmt.Errorf("%w: TLE line 1 starts with %q", ErrInvalidArgument, line1[0])
	}
	if line2[0] != '2' {
		return nil, fmt.Errorf("%w: TLE line 2 starts with %q", ErrInvalidArgument, line2[0])
	}
	for i, line := range []string{line1, line2} {
		if tleChecksum(line[:tleLineLength-1]) != int(line[tleLineLength-1]-'0') {
			return nil, fmt.Errorf("%w: bad checksum on TLE line %d", ErrInvalidArgument, i+1)
		}
	}
	id1, err := strconv.Atoi(strings.TrimSpace(line1[2:7]))
	if err != nil {
		return nil, fmt.Errorf("%w: catalog number on line 1: %s", ErrInvalidArgument, err)
	}
	id2, err := strconv.Atoi(strings.TrimSpace(line2[2:7]))
	if err != nil {
		return nil, fmt.Errorf("%w: catalog number on line 2: %s", ErrInvalidArgument, err)
	}
	if id1 != id2 {
		return nil, fmt.Errorf("%w: catalog number mismatch (%d vs %d)", ErrInvalidArgument, id1, id2)
	}
	epoch, err := parseTLEEpoch(strings.TrimSpace(line1[18:32]))
	if err != nil {
		return nil, err
	}
	return &TLE{Line1: line1, Line2: line2, NoradID: id1, Epoch: epoch}, nil
}

// tleChecksum computes the modulo-10 checksum: digits count as themselves,
// each minus sign counts as one, everything else as zero.
func tleChecksum(line string) int {
	sum := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// parseTLEEpoch decodes the YYDDD.DDDDDDDD epoch field. Years 57-99 map to
// 1957-1999, years 00-56 to 2000-2056.
func parseTLEEpoch(field string) (time.Time, error) {
	if len(field) < 7 {
		return time.Time{}, fmt.Errorf("%w: TLE epoch field too short", ErrInvalidArgument)
	}
	year, err := strconv.Atoi(field[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: TLE epoch year: %s", ErrInvalidArgument, err)
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}
	dayOfYear, err := strconv.ParseFloat(field[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: TLE epoch day: %s", ErrInvalidArgument, err)
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.Add(time.Duration((dayOfYear - 1) * 24 * float64(time.Hour))), nil
}

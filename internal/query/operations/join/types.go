package join

import (
	"fmt"
	"strings"

	"github.com/leengari/airquery/internal/domain/data"
)

// PairingMode decides which UHF code a geo_id carries when the same geo_id
// appears more than once in one lookup group
type PairingMode string

const (
	// PairEach keeps every occurrence paired with its own row's values
	PairEach PairingMode = "each"
	// PairFirstOccurrence resolves every repeat to the values of the
	// first occurrence in the group (legacy output)
	PairFirstOccurrence PairingMode = "first-occurrence"
)

// ParsePairingMode accepts "each" or "first-occurrence"; empty means PairEach
func ParsePairingMode(s string) (PairingMode, error) {
	switch PairingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PairEach:
		return PairEach, nil
	case PairFirstOccurrence:
		return PairFirstOccurrence, nil
	default:
		return "", fmt.Errorf("unknown pairing mode %q (want %q or %q)", s, PairEach, PairFirstOccurrence)
	}
}

// String returns the string representation of the mode
func (m PairingMode) String() string {
	return string(m)
}

// ReadingLayout locates the reading fields inside an air-quality tuple
type ReadingLayout struct {
	Location    int
	Date        int
	Measurement int
}

// width is the minimum tuple length needed to read every field
func (l ReadingLayout) width() int {
	w := l.Location
	if l.Date > w {
		w = l.Date
	}
	if l.Measurement > w {
		w = l.Measurement
	}
	return w + 1
}

func (l ReadingLayout) reading(pair data.GeoPair, t data.Tuple) (data.Reading, bool) {
	if len(t) < l.width() {
		return data.Reading{}, false
	}
	return data.Reading{
		Date:        t[l.Date],
		UHFCode:     pair.UHFCode,
		GeoID:       pair.GeoID,
		Location:    t[l.Location],
		Measurement: t[l.Measurement],
	}, true
}

// Stats summarizes a join for logging and observers
type Stats struct {
	Left      int // pairs or readings on the probe side
	Matched   int // probe entries with at least one match
	Unmatched int // probe entries dropped for lack of a match
	Short     int // tuples dropped because their row was too short
	Results   int
}

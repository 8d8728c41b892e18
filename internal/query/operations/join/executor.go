package join

import (
	"log/slog"

	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/query/indexing"
)

// PairsFromGroups turns (geo_id, uhf_code) tuples into GeoPairs.
// Tuples missing either field are skipped and counted.
func PairsFromGroups(groups []data.Tuple) ([]data.GeoPair, int) {
	pairs := make([]data.GeoPair, 0, len(groups))
	short := 0
	for _, g := range groups {
		if len(g) < 2 {
			short++
			continue
		}
		pairs = append(pairs, data.GeoPair{GeoID: g[0], UHFCode: g[1]})
	}
	return pairs, short
}

// PairsForCode pairs every geo_id with the same UHF code
func PairsForCode(code string, groups []data.Tuple) []data.GeoPair {
	pairs := make([]data.GeoPair, 0, len(groups))
	for _, g := range groups {
		for _, geoID := range g {
			pairs = append(pairs, data.GeoPair{GeoID: geoID, UHFCode: code})
		}
	}
	return pairs
}

// ExecuteJoin probes the geo_id-keyed readings index with each pair in order
// and emits one Reading per matching tuple. Pairs whose geo_id has no
// readings are dropped.
func ExecuteJoin(
	pairs []data.GeoPair,
	readings *indexing.Index,
	layout ReadingLayout,
	mode PairingMode,
) ([]data.Reading, Stats) {
	stats := Stats{Left: len(pairs)}

	var first map[string]string
	if mode == PairFirstOccurrence {
		first = make(map[string]string, len(pairs))
		for _, p := range pairs {
			if _, seen := first[p.GeoID]; !seen {
				first[p.GeoID] = p.UHFCode
			}
		}
	}

	results := make([]data.Reading, 0)
	for _, pair := range pairs {
		tuples, found := readings.Data[pair.GeoID]
		if !found {
			stats.Unmatched++
			continue
		}
		stats.Matched++

		if first != nil {
			pair.UHFCode = first[pair.GeoID]
		}

		for _, t := range tuples {
			r, ok := layout.reading(pair, t)
			if !ok {
				stats.Short++
				continue
			}
			results = append(results, r)
		}
	}
	stats.Results = len(results)

	slog.Info("geo join completed",
		slog.String("right", readings.Source),
		slog.String("pairing", mode.String()),
		slog.Int("pairs", stats.Left),
		slog.Int("unmatched", stats.Unmatched),
		slog.Int("short_rows", stats.Short),
		slog.Int("result_rows", stats.Results),
	)

	return results, stats
}

// AttachUHF resolves the UHF code of each reading through the geo_id-keyed
// UHF index. Readings whose geo_id has no UHF entry are dropped.
// Each reading yields exactly one row carrying the first UHF code listed for
// its geo_id. With PairFirstOccurrence repeats of a geo_id also reuse the
// first reading's location and measurement.
func AttachUHF(readings []data.Reading, uhf *indexing.Index, mode PairingMode) ([]data.Reading, Stats) {
	stats := Stats{Left: len(readings)}

	var first map[string]data.Reading
	if mode == PairFirstOccurrence {
		first = make(map[string]data.Reading, len(readings))
		for _, r := range readings {
			if _, seen := first[r.GeoID]; !seen {
				first[r.GeoID] = r
			}
		}
	}

	results := make([]data.Reading, 0, len(readings))
	for _, reading := range readings {
		tuples, found := uhf.Data[reading.GeoID]
		if !found {
			stats.Unmatched++
			continue
		}
		stats.Matched++

		if first != nil {
			reading = first[reading.GeoID]
		}
		reading.UHFCode = tuples[0][0]
		results = append(results, reading)
	}
	stats.Results = len(results)

	slog.Info("uhf join completed",
		slog.String("right", uhf.Source),
		slog.String("pairing", mode.String()),
		slog.Int("readings", stats.Left),
		slog.Int("unmatched", stats.Unmatched),
		slog.Int("result_rows", stats.Results),
	)

	return results, stats
}

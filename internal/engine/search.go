package engine

import (
	"fmt"
	"log/slog"

	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/domain/lookup"
	"github.com/leengari/airquery/internal/query/indexing"
	"github.com/leengari/airquery/internal/query/operations/join"
)

// Air-quality table columns
const (
	aqGeoID       = 0
	aqLocation    = 1
	aqDate        = 2
	aqMeasurement = 3
)

// UHF table columns; zip codes occupy 3 through 16
const (
	uhfBorough  = 0
	uhfCode     = 1
	uhfGeoID    = 2
	uhfFirstZip = 3
	uhfLastZip  = 16
)

// zipFields lists the 14 zip code columns of the UHF table
func zipFields() []int {
	fields := make([]int, 0, uhfLastZip-uhfFirstZip+1)
	for i := uhfFirstZip; i <= uhfLastZip; i++ {
		fields = append(fields, i)
	}
	return fields
}

// readingsByGeoConfig indexes air quality by geo_id; tuple layout matches geoLayout
var readingsByGeoConfig = indexing.IndexConfig{
	KeyFields:   []int{aqGeoID},
	ValueFields: []int{aqLocation, aqDate, aqMeasurement},
}

var geoLayout = join.ReadingLayout{Location: 0, Date: 1, Measurement: 2}

// SearchByDate lists every reading taken on date, with its UHF code.
// Readings whose geo_id is missing from the UHF table are left out.
func (e *Engine) SearchByDate(date string) ([]string, error) {
	readings, err := e.ReadingsByDate(date)
	if err != nil {
		return nil, err
	}
	return data.FormatReadings(readings), nil
}

// SearchByUHF lists every reading of the geo_ids in one UHF zone
func (e *Engine) SearchByUHF(code string) ([]string, error) {
	readings, err := e.ReadingsByUHF(code)
	if err != nil {
		return nil, err
	}
	return data.FormatReadings(readings), nil
}

// SearchByBorough lists every reading of the geo_ids in a borough
func (e *Engine) SearchByBorough(borough string) ([]string, error) {
	readings, err := e.ReadingsByBorough(borough)
	if err != nil {
		return nil, err
	}
	return data.FormatReadings(readings), nil
}

// SearchByZipcode lists every reading of the UHF zones covering a zip code
func (e *Engine) SearchByZipcode(zipcode string) ([]string, error) {
	readings, err := e.ReadingsByZipcode(zipcode)
	if err != nil {
		return nil, err
	}
	return data.FormatReadings(readings), nil
}

// ReadingsByDate is SearchByDate returning structured readings
func (e *Engine) ReadingsByDate(date string) (readings []data.Reading, err error) {
	lk := e.begin(KindDate, date)
	defer func() { e.end(lk, len(readings), err) }()

	aq, err := e.buildIndex(lk, e.sources.AirQuality, indexing.IndexConfig{
		KeyFields:   []int{aqDate},
		ValueFields: []int{aqGeoID, aqLocation, aqMeasurement},
	})
	if err != nil {
		return nil, err
	}

	groups, err := aq.Groups(date)
	if err != nil {
		return nil, fmt.Errorf("search by date: %w", err)
	}

	onDate := make([]data.Reading, 0, len(groups))
	for _, g := range groups {
		if len(g) < 3 {
			slog.Debug("skipping short air quality row", slog.String("date", date), slog.Any("values", g))
			continue
		}
		onDate = append(onDate, data.Reading{
			Date:        date,
			GeoID:       g[0],
			Location:    g[1],
			Measurement: g[2],
		})
	}

	uhf, err := e.buildIndex(lk, e.sources.UHF, indexing.IndexConfig{
		KeyFields:   []int{uhfGeoID},
		ValueFields: []int{uhfCode},
	})
	if err != nil {
		return nil, err
	}

	e.notify(Event{Type: EventJoinStart, LookupID: lk.ID, Data: len(onDate)})
	readings, stats := join.AttachUHF(onDate, uhf, e.pairing)
	e.notify(Event{Type: EventJoinEnd, LookupID: lk.ID, Data: stats})

	return readings, nil
}

// ReadingsByUHF is SearchByUHF returning structured readings
func (e *Engine) ReadingsByUHF(code string) (readings []data.Reading, err error) {
	lk := e.begin(KindUHF, code)
	defer func() { e.end(lk, len(readings), err) }()

	uhf, err := e.buildIndex(lk, e.sources.UHF, indexing.IndexConfig{
		KeyFields:   []int{uhfCode},
		ValueFields: []int{uhfGeoID},
	})
	if err != nil {
		return nil, err
	}

	groups, err := uhf.Groups(code)
	if err != nil {
		return nil, fmt.Errorf("search by uhf: %w", err)
	}

	return e.joinReadings(lk, join.PairsForCode(code, groups))
}

// ReadingsByBorough is SearchByBorough returning structured readings
func (e *Engine) ReadingsByBorough(borough string) (readings []data.Reading, err error) {
	lk := e.begin(KindBorough, borough)
	defer func() { e.end(lk, len(readings), err) }()

	uhf, err := e.buildIndex(lk, e.sources.UHF, indexing.IndexConfig{
		KeyFields:   []int{uhfBorough},
		ValueFields: []int{uhfGeoID, uhfCode},
	})
	if err != nil {
		return nil, err
	}

	groups, err := uhf.Groups(borough)
	if err != nil {
		return nil, fmt.Errorf("search by borough: %w", err)
	}

	return e.joinReadings(lk, e.pairsFromGroups(borough, groups))
}

// ReadingsByZipcode is SearchByZipcode returning structured readings.
// A zip code may appear in any of the 14 zip columns of the UHF table.
func (e *Engine) ReadingsByZipcode(zipcode string) (readings []data.Reading, err error) {
	lk := e.begin(KindZip, zipcode)
	defer func() { e.end(lk, len(readings), err) }()

	uhf, err := e.buildIndex(lk, e.sources.UHF, indexing.IndexConfig{
		KeyFields:   zipFields(),
		ValueFields: []int{uhfGeoID, uhfCode},
	})
	if err != nil {
		return nil, err
	}

	groups, err := uhf.Groups(zipcode)
	if err != nil {
		return nil, fmt.Errorf("search by zip code: %w", err)
	}

	return e.joinReadings(lk, e.pairsFromGroups(zipcode, groups))
}

func (e *Engine) pairsFromGroups(key string, groups []data.Tuple) []data.GeoPair {
	pairs, short := join.PairsFromGroups(groups)
	if short > 0 {
		slog.Debug("skipping short uhf rows", slog.String("key", key), slog.Int("rows", short))
	}
	return pairs
}

// joinReadings indexes the air-quality table by geo_id and joins pairs against it
func (e *Engine) joinReadings(lk *lookup.Lookup, pairs []data.GeoPair) ([]data.Reading, error) {
	aq, err := e.buildIndex(lk, e.sources.AirQuality, readingsByGeoConfig)
	if err != nil {
		return nil, err
	}

	e.notify(Event{Type: EventJoinStart, LookupID: lk.ID, Data: len(pairs)})
	readings, stats := join.ExecuteJoin(pairs, aq, geoLayout, e.pairing)
	e.notify(Event{Type: EventJoinEnd, LookupID: lk.ID, Data: stats})

	return readings, nil
}

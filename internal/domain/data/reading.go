package data

import "fmt"

// MeasurementUnit is appended to every measurement when a reading is formatted
const MeasurementUnit = "mcg/m^3"

// Reading is one joined air-quality result
type Reading struct {
	Date        string
	UHFCode     string
	GeoID       string
	Location    string
	Measurement string
}

// String renders the reading as "date, uhf, geo_id, location, measurement unit"
func (r Reading) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s %s",
		r.Date, r.UHFCode, r.GeoID, r.Location, r.Measurement, MeasurementUnit)
}

// GeoPair carries a geo_id together with the UHF code it was listed under,
// so the pairing survives the join without positional lookups
type GeoPair struct {
	GeoID   string
	UHFCode string
}

// FormatReadings renders each reading with String, preserving order
func FormatReadings(readings []Reading) []string {
	out := make([]string, len(readings))
	for i, r := range readings {
		out[i] = r.String()
	}
	return out
}

package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// AirQualityRows is a small air-quality table: geo_id, location, date, measurement
var AirQualityRows = [][]string{
	{"101", "Kingsbridge - Riverdale", "2020-01-01", "5.1"},
	{"101", "Kingsbridge - Riverdale", "2021-01-01", "4.8"},
	{"102", "Northeast Bronx", "2020-01-01", "6.2"},
	{"201", "Greenpoint", "2020-01-01", "9.7"},
	{"999", "Nowhere", "2020-01-01", "1.0"},
}

// UHFRows is a small UHF reference table: borough, uhf_code, geo_id, zip codes...
var UHFRows = [][]string{
	{"Bronx", "101", "101", "10463", "10471"},
	{"Bronx", "102", "102", "10466", "10469", "10470", "10475"},
	{"Brooklyn", "201", "201", "11211", "11222"},
}

// WriteCSV writes rows to dir/name and returns the file path
func WriteCSV(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteTables writes both tables into a fresh temp dir and returns their paths
func WriteTables(t *testing.T, airQuality, uhf [][]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return WriteCSV(t, dir, "air_quality.csv", airQuality), WriteCSV(t, dir, "uhf.csv", uhf)
}

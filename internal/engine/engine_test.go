package engine_test

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/airquery/internal/domain/errors"
	"github.com/leengari/airquery/internal/engine"
	"github.com/leengari/airquery/internal/query/operations/join"
	"github.com/leengari/airquery/internal/query/operations/testutil"
)

func newEngine(t *testing.T, airQuality, uhf [][]string, mode join.PairingMode) *engine.Engine {
	t.Helper()
	aq, u := testutil.WriteTables(t, airQuality, uhf)
	return engine.New(engine.Sources{AirQuality: aq, UHF: u}, engine.Options{Pairing: mode})
}

func TestSearchByDate_SingleRow(t *testing.T) {
	eng := newEngine(t,
		[][]string{{"G1", "LocA", "2020-01-01", "5"}},
		[][]string{{"Bronx", "U1", "G1"}},
		join.PairEach,
	)

	rows, err := eng.SearchByDate("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01, U1, G1, LocA, 5 mcg/m^3"}, rows)
}

func TestSearchByDate_DropsGeoWithoutUHF(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	rows, err := eng.SearchByDate("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, 101, 101, Kingsbridge - Riverdale, 5.1 mcg/m^3",
		"2020-01-01, 102, 102, Northeast Bronx, 6.2 mcg/m^3",
		"2020-01-01, 201, 201, Greenpoint, 9.7 mcg/m^3",
	}, rows)
}

func TestSearchByUHF(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	rows, err := eng.SearchByUHF("101")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, 101, 101, Kingsbridge - Riverdale, 5.1 mcg/m^3",
		"2021-01-01, 101, 101, Kingsbridge - Riverdale, 4.8 mcg/m^3",
	}, rows)
}

func TestSearchByBorough(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	rows, err := eng.SearchByBorough("Bronx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, 101, 101, Kingsbridge - Riverdale, 5.1 mcg/m^3",
		"2021-01-01, 101, 101, Kingsbridge - Riverdale, 4.8 mcg/m^3",
		"2020-01-01, 102, 102, Northeast Bronx, 6.2 mcg/m^3",
	}, rows)
}

func TestSearchByZipcode(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	tests := []struct {
		zip  string
		want []string
	}{
		{"10470", []string{"2020-01-01, 102, 102, Northeast Bronx, 6.2 mcg/m^3"}},
		{"11222", []string{"2020-01-01, 201, 201, Greenpoint, 9.7 mcg/m^3"}},
		{"10463", []string{
			"2020-01-01, 101, 101, Kingsbridge - Riverdale, 5.1 mcg/m^3",
			"2021-01-01, 101, 101, Kingsbridge - Riverdale, 4.8 mcg/m^3",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			rows, err := eng.SearchByZipcode(tt.zip)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestSearchByZipcode_LastZipColumn(t *testing.T) {
	uhfRow := []string{"Queens", "U4", "G4"}
	for i := 0; i < 14; i++ {
		uhfRow = append(uhfRow, "1130"+string(rune('0'+i%10)))
	}
	uhfRow[16] = "11999"
	uhfRow = append(uhfRow, "12000") // column 17 is not a zip column

	eng := newEngine(t,
		[][]string{{"G4", "Flushing", "2020-01-01", "8"}},
		[][]string{uhfRow},
		join.PairEach,
	)

	rows, err := eng.SearchByZipcode("11999")
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01, U4, G4, Flushing, 8 mcg/m^3"}, rows)

	_, err = eng.SearchByZipcode("12000")
	assert.True(t, errors.IsKeyNotFound(err))
}

func TestSearch_AbsentKeys(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	tests := []struct {
		name   string
		search func(string) ([]string, error)
		key    string
	}{
		{"date", eng.SearchByDate, "1999-12-31"},
		{"uhf", eng.SearchByUHF, "999"},
		{"borough", eng.SearchByBorough, "Staten Island"},
		{"zip", eng.SearchByZipcode, "00000"},
		{"borough is case sensitive", eng.SearchByBorough, "bronx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := tt.search(tt.key)
			testutil.AssertKeyNotFound(t, err, tt.name)
			assert.Nil(t, rows)
		})
	}
}

func TestSearch_GeoWithoutReadingsIsDropped(t *testing.T) {
	eng := newEngine(t,
		[][]string{{"G1", "LocA", "2020-01-01", "5"}},
		[][]string{{"Bronx", "U1", "G1"}, {"Bronx", "U2", "G2"}},
		join.PairEach,
	)

	rows, err := eng.SearchByBorough("Bronx")
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01, U1, G1, LocA, 5 mcg/m^3"}, rows)

	rows, err = eng.SearchByUHF("U2")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// The same geo_id listed under two UHF codes in one borough.
// Default pairing keeps each code; the legacy mode repeats the first one.
func TestSearchByBorough_RepeatedGeoID(t *testing.T) {
	aq := [][]string{{"G1", "LocA", "2020-01-01", "5"}}
	uhf := [][]string{
		{"Bronx", "U1", "G1"},
		{"Bronx", "U9", "G1"},
	}

	rows, err := newEngine(t, aq, uhf, join.PairEach).SearchByBorough("Bronx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
		"2020-01-01, U9, G1, LocA, 5 mcg/m^3",
	}, rows)

	rows, err = newEngine(t, aq, uhf, join.PairFirstOccurrence).SearchByBorough("Bronx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
	}, rows)
}

func TestSearchByDate_RepeatedGeoID(t *testing.T) {
	aq := [][]string{
		{"G1", "LocA", "2020-01-01", "5"},
		{"G1", "LocA", "2020-01-01", "7"},
	}
	uhf := [][]string{{"Bronx", "U1", "G1"}}

	rows, err := newEngine(t, aq, uhf, join.PairEach).SearchByDate("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
		"2020-01-01, U1, G1, LocA, 7 mcg/m^3",
	}, rows)

	rows, err = newEngine(t, aq, uhf, join.PairFirstOccurrence).SearchByDate("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
		"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
	}, rows)
}

// A geo_id listed under several UHF codes still yields one row per reading
func TestSearchByDate_GeoInSeveralZones(t *testing.T) {
	aq := [][]string{
		{"G1", "LocA", "2020-01-01", "5"},
		{"G2", "LocB", "2020-01-01", "6"},
	}
	uhf := [][]string{
		{"Bronx", "U1", "G1"},
		{"Queens", "U2", "G1"},
		{"Queens", "U2", "G2"},
	}

	for _, mode := range []join.PairingMode{join.PairEach, join.PairFirstOccurrence} {
		rows, err := newEngine(t, aq, uhf, mode).SearchByDate("2020-01-01")
		require.NoError(t, err)
		assert.Len(t, rows, len(aq), "mode %s", mode)
		assert.Equal(t, []string{
			"2020-01-01, U1, G1, LocA, 5 mcg/m^3",
			"2020-01-01, U2, G2, LocB, 6 mcg/m^3",
		}, rows, "mode %s", mode)
	}
}

func TestSearch_DuplicateRowsIgnored(t *testing.T) {
	aq := [][]string{
		{"G1", "LocA", "2020-01-01", "5"},
		{"G1", "LocA", "2020-01-01", "5"},
	}
	uhf := [][]string{
		{"Bronx", "U1", "G1"},
		{"Bronx", "U1", "G1"},
	}
	eng := newEngine(t, aq, uhf, join.PairEach)

	for name, search := range map[string]func(string) ([]string, error){
		"date":    eng.SearchByDate,
		"borough": eng.SearchByBorough,
	} {
		key := "Bronx"
		if name == "date" {
			key = "2020-01-01"
		}
		rows, err := search(key)
		require.NoError(t, err, name)
		assert.Equal(t, []string{"2020-01-01, U1, G1, LocA, 5 mcg/m^3"}, rows, name)
	}
}

func TestSearch_MissingSource(t *testing.T) {
	dir := t.TempDir()
	uhf := testutil.WriteCSV(t, dir, "uhf.csv", testutil.UHFRows)
	eng := engine.New(engine.Sources{
		AirQuality: filepath.Join(dir, "missing.csv"),
		UHF:        uhf,
	}, engine.Options{})

	_, err := eng.SearchByBorough("Bronx")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.IsKeyNotFound(err))

	// The key is checked before the second table is read
	_, err = eng.SearchByUHF("nope")
	assert.True(t, errors.IsKeyNotFound(err))
}

func TestExecute(t *testing.T) {
	eng := newEngine(t, testutil.AirQualityRows, testutil.UHFRows, join.PairEach)

	res, err := eng.Execute(engine.KindZip, "10466")
	require.NoError(t, err)
	assert.Equal(t, engine.KindZip, res.Kind)
	assert.Equal(t, "10466", res.Key)
	assert.Equal(t, []string{"2020-01-01, 102, 102, Northeast Bronx, 6.2 mcg/m^3"}, res.Rows)
	require.Len(t, res.Readings, 1)
	assert.Equal(t, "Northeast Bronx", res.Readings[0].Location)
	assert.Equal(t, "Returned 1 rows", res.Message)

	_, err = eng.Execute(engine.KindDate, "nope")
	assert.True(t, errors.IsKeyNotFound(err))

	_, err = eng.Execute(engine.QueryKind("county"), "x")
	assert.Error(t, err)
}

func TestParseQueryKind(t *testing.T) {
	for in, want := range map[string]engine.QueryKind{
		"date":    engine.KindDate,
		"UHF":     engine.KindUHF,
		"Borough": engine.KindBorough,
		"zip":     engine.KindZip,
		"zipcode": engine.KindZip,
	} {
		got, err := engine.ParseQueryKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := engine.ParseQueryKind("county")
	assert.Error(t, err)
}

func TestNew_DefaultPairing(t *testing.T) {
	eng := engine.New(engine.Sources{}, engine.Options{})
	assert.Equal(t, join.PairEach, eng.Pairing())
}

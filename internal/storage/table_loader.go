package storage

import (
	"bufio"
	"encoding/csv"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/domain/errors"
)

// RowFunc receives each record of a table in file order.
// Returning an error stops the scan and is returned unchanged.
type RowFunc func(line int, row data.Row) error

// ScanTable opens the CSV file at path and streams its records to fn
func ScanTable(path string, fn RowFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return &errors.SourceError{Source: path, Op: "open", Err: err}
	}
	defer f.Close()

	return Scan(path, bufio.NewReader(f), fn)
}

// Scan reads CSV records from r. name is only used for errors and logs.
// Rows may have differing field counts; blank lines are skipped by the reader.
// A stray quote inside an unquoted field is kept as a literal character.
func Scan(name string, r io.Reader, fn RowFunc) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				return &errors.SourceError{Source: name, Op: "read", Line: parseErr.StartLine, Err: parseErr.Err}
			}
			return &errors.SourceError{Source: name, Op: "read", Err: err}
		}

		line, _ := reader.FieldPos(0)
		count++

		if err := fn(line, data.Row(record)); err != nil {
			return err
		}
	}

	slog.Debug("table scanned",
		slog.String("source", name),
		slog.Int("rows", count),
	)

	return nil
}

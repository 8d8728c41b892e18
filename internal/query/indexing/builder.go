package indexing

import (
	"io"
	"log/slog"
	"strings"

	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/storage"
)

// Build indexes the CSV file at source.
// Returns InvalidIndexError before touching the file if cfg is malformed,
// and SourceError if the file cannot be opened or parsed.
func Build(source string, cfg IndexConfig) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(source, cfg)
	if err := storage.ScanTable(source, b.addRow); err != nil {
		return nil, err
	}
	b.finish()

	return b.idx, nil
}

// Read indexes CSV records read from r. name labels the index in errors and logs.
func Read(name string, r io.Reader, cfg IndexConfig) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(name, cfg)
	if err := storage.Scan(name, r, b.addRow); err != nil {
		return nil, err
	}
	b.finish()

	return b.idx, nil
}

// FromRows indexes rows already in memory
func FromRows(name string, rows []data.Row, cfg IndexConfig) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(name, cfg)
	for i, row := range rows {
		if err := b.addRow(i+1, row); err != nil {
			return nil, err
		}
	}
	b.finish()

	return b.idx, nil
}

type builder struct {
	idx        *Index
	seen       map[string]struct{}
	rows       int
	duplicates int
	empty      int
}

func newBuilder(source string, cfg IndexConfig) *builder {
	return &builder{
		idx:  newIndex(source, cfg),
		seen: make(map[string]struct{}),
	}
}

func (b *builder) addRow(_ int, row data.Row) error {
	b.rows++

	// Skip exact duplicates, compared on raw fields
	fp := row.Fingerprint()
	if _, dup := b.seen[fp]; dup {
		b.duplicates++
		return nil
	}
	b.seen[fp] = struct{}{}

	tuple := make(data.Tuple, 0, len(b.idx.Config.ValueFields))
	for _, vi := range b.idx.Config.ValueFields {
		if v, ok := row.Field(vi); ok {
			tuple = append(tuple, strings.TrimSpace(v))
		}
	}
	if len(tuple) == 0 {
		b.empty++
		return nil
	}

	for _, ki := range b.idx.Config.KeyFields {
		k, ok := row.Field(ki)
		if !ok {
			continue
		}
		b.idx.add(strings.TrimSpace(k), tuple)
	}

	return nil
}

func (b *builder) finish() {
	slog.Debug("index built",
		slog.String("source", b.idx.Source),
		slog.Any("key_fields", b.idx.Config.KeyFields),
		slog.Any("value_fields", b.idx.Config.ValueFields),
		slog.Int("rows", b.rows),
		slog.Int("duplicates_skipped", b.duplicates),
		slog.Int("rows_without_values", b.empty),
		slog.Int("distinct_keys", b.idx.Len()))
}

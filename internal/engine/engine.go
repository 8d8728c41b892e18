package engine

import (
	"fmt"
	"time"

	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/domain/lookup"
	"github.com/leengari/airquery/internal/query/indexing"
	"github.com/leengari/airquery/internal/query/operations/join"
)

// Sources holds the paths of the two input tables
type Sources struct {
	AirQuality string // geo_id, location, date, measurement
	UHF        string // borough, uhf_code, geo_id, zip codes...
}

// Options tunes query behaviour
type Options struct {
	Pairing join.PairingMode
}

// Engine is the main entry point for queries.
// It keeps no data between calls: every query re-reads both tables.
type Engine struct {
	sources   Sources
	pairing   join.PairingMode
	observers []Observer // Observers for lifecycle events
}

// New creates a new Engine instance
func New(sources Sources, opts Options) *Engine {
	pairing := opts.Pairing
	if pairing == "" {
		pairing = join.PairEach
	}
	return &Engine{
		sources:   sources,
		pairing:   pairing,
		observers: make([]Observer, 0),
	}
}

// Sources returns the configured table paths
func (e *Engine) Sources() Sources {
	return e.sources
}

// Pairing returns the pairing mode used by the joins
func (e *Engine) Pairing() join.PairingMode {
	return e.pairing
}

// Result is the outcome of a successful query
type Result struct {
	Kind     QueryKind
	Key      string
	Rows     []string
	Readings []data.Reading
	Message  string
}

// Execute runs the query of the given kind and wraps the rows in a Result.
// Lookup failures come back as errors; check them with errors.IsKeyNotFound.
func (e *Engine) Execute(kind QueryKind, key string) (*Result, error) {
	var (
		readings []data.Reading
		err      error
	)

	switch kind {
	case KindDate:
		readings, err = e.ReadingsByDate(key)
	case KindUHF:
		readings, err = e.ReadingsByUHF(key)
	case KindBorough:
		readings, err = e.ReadingsByBorough(key)
	case KindZip:
		readings, err = e.ReadingsByZipcode(key)
	default:
		return nil, fmt.Errorf("unsupported query kind: %q", kind)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind:     kind,
		Key:      key,
		Rows:     data.FormatReadings(readings),
		Readings: readings,
		Message:  fmt.Sprintf("Returned %d rows", len(readings)),
	}, nil
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}

func (e *Engine) begin(kind QueryKind, key string) *lookup.Lookup {
	lk := lookup.New(kind.String(), key)
	e.notify(Event{Type: EventQueryStart, LookupID: lk.ID, Data: map[string]interface{}{
		"kind": lk.Kind,
		"key":  lk.Key,
		"seq":  lk.Seq,
	}})
	return lk
}

// end reports either the row count or the error
func (e *Engine) end(lk *lookup.Lookup, rows int, err error) {
	payload := map[string]interface{}{
		"kind":    lk.Kind,
		"seq":     lk.Seq,
		"elapsed": lk.Elapsed(),
	}
	if err != nil {
		payload["error"] = err.Error()
	} else {
		payload["rows_returned"] = rows
	}
	e.notify(Event{Type: EventQueryEnd, LookupID: lk.ID, Data: payload})
}

func (e *Engine) buildIndex(lk *lookup.Lookup, source string, cfg indexing.IndexConfig) (*indexing.Index, error) {
	e.notify(Event{Type: EventIndexStart, LookupID: lk.ID, Data: source})
	idx, err := indexing.Build(source, cfg)
	if err != nil {
		return nil, err
	}
	e.notify(Event{Type: EventIndexEnd, LookupID: lk.ID, Data: map[string]interface{}{
		"source":        source,
		"distinct_keys": idx.Len(),
	}})
	return idx, nil
}

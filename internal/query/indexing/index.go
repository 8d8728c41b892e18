package indexing

import (
	"github.com/leengari/airquery/internal/domain/data"
	"github.com/leengari/airquery/internal/domain/errors"
)

// IndexConfig selects the key and value columns of an index.
// A single column is written as a one-element list.
type IndexConfig struct {
	KeyFields   []int
	ValueFields []int
}

// Validate rejects empty lists and negative column indexes
func (c IndexConfig) Validate() error {
	if len(c.KeyFields) == 0 {
		return errors.NewEmptyIndexList("key")
	}
	if len(c.ValueFields) == 0 {
		return errors.NewEmptyIndexList("value")
	}
	for pos, idx := range c.KeyFields {
		if idx < 0 {
			return errors.NewNegativeIndex("key", pos, idx)
		}
	}
	for pos, idx := range c.ValueFields {
		if idx < 0 {
			return errors.NewNegativeIndex("value", pos, idx)
		}
	}
	return nil
}

// Index is an in-memory multimap from a column value to the tuples of
// every distinct row that carried that value in one of the key columns
type Index struct {
	Source string
	Config IndexConfig
	Data   map[string][]data.Tuple // key → tuples in row order
	keys   []string                // keys in first-seen order
}

func newIndex(source string, cfg IndexConfig) *Index {
	return &Index{
		Source: source,
		Config: cfg,
		Data:   make(map[string][]data.Tuple),
	}
}

func (idx *Index) add(key string, tuple data.Tuple) {
	if _, exists := idx.Data[key]; !exists {
		idx.keys = append(idx.keys, key)
	}
	idx.Data[key] = append(idx.Data[key], tuple)
}

// Has reports whether key has at least one value
func (idx *Index) Has(key string) bool {
	_, ok := idx.Data[key]
	return ok
}

// Lookup returns the flattened values for key: every contributing row's
// tuple concatenated in row order. Absent keys return a KeyNotFoundError.
func (idx *Index) Lookup(key string) ([]string, error) {
	tuples, ok := idx.Data[key]
	if !ok {
		return nil, errors.NewKeyNotFound(idx.Source, key)
	}
	var out []string
	for _, t := range tuples {
		out = append(out, t...)
	}
	return out, nil
}

// Groups returns the per-row tuples for key.
// A tuple is shorter than len(ValueFields) when its row was too short.
func (idx *Index) Groups(key string) ([]data.Tuple, error) {
	tuples, ok := idx.Data[key]
	if !ok {
		return nil, errors.NewKeyNotFound(idx.Source, key)
	}
	out := make([]data.Tuple, len(tuples))
	copy(out, tuples)
	return out, nil
}

// Keys returns the keys in the order they were first seen
func (idx *Index) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Len returns the number of distinct keys
func (idx *Index) Len() int {
	return len(idx.Data)
}

// Entries returns the whole index as key → flattened values
func (idx *Index) Entries() map[string][]string {
	out := make(map[string][]string, len(idx.Data))
	for key := range idx.Data {
		out[key], _ = idx.Lookup(key)
	}
	return out
}

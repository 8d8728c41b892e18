package lookup

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers lookups within one process for log readability
var seqCounter uint64

// Lookup is the context of a single query call
// It lives for the duration of the call and ties together its lifecycle events
type Lookup struct {
	ID        string    // Unique lookup identifier (UUID)
	Seq       uint64    // Process-local sequence number
	Kind      string    // Query kind, e.g. "date"
	Key       string    // Query key as entered
	StartTime time.Time // When the lookup began
}

// New creates a new lookup with a unique ID
func New(kind, key string) *Lookup {
	return &Lookup{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Kind:      kind,
		Key:       key,
		StartTime: time.Now(),
	}
}

// Elapsed returns the time since the lookup started
func (l *Lookup) Elapsed() time.Duration {
	return time.Since(l.StartTime)
}


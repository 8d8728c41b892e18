package engine

import "time"

// EventType represents different lifecycle phases in query execution
type EventType string

const (
	EventQueryStart EventType = "query_start"
	EventIndexStart EventType = "index_start"
	EventIndexEnd   EventType = "index_end"
	EventJoinStart  EventType = "join_start"
	EventJoinEnd    EventType = "join_end"
	EventQueryEnd   EventType = "query_end"
)

// Event represents a lifecycle event in query execution
type Event struct {
	Type      EventType   // Type of event
	LookupID  string      // Lookup ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (e.g., source path, join stats, row count)
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}

package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	BatchStarted Type = iota + 1
	SourceStarted
	SourceCompleted
	SourceFailed
	BatchComplete
)

var typeNames = [...]string{
	BatchStarted:    "BatchStarted",
	SourceStarted:   "SourceStarted",
	SourceCompleted: "SourceCompleted",
	SourceFailed:    "SourceFailed",
	BatchComplete:   "BatchComplete",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Source    string // source identifier as configured
	Index     int    // position of the source in the batch
	Bytes     int64  // bytes consumed (SourceCompleted) or batch total (BatchComplete)
	Lines     int64  // lines consumed, same scoping as Bytes
	Total     int    // number of configured sources (BatchStarted)
	Error     error
}

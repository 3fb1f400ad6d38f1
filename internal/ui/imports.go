package ui

import "github.com/bamsammich/tally/internal/event"

// Event is re-exported for presenter signatures.
type Event = event.Event

// Re-export event types for convenience.
const (
	BatchStarted    = event.BatchStarted
	SourceStarted   = event.SourceStarted
	SourceCompleted = event.SourceCompleted
	SourceFailed    = event.SourceFailed
	BatchComplete   = event.BatchComplete
)

package library

import (
	"context"

	models "libris/internal/domain/models/library"
)

// EventSource is the inbound push-event channel delivering processing
// progress records, unordered relative to HTTP responses.
type EventSource interface {
	// Events returns the channel events are delivered on. The channel is
	// closed when Run returns.
	Events() <-chan models.ProcessingEvent
	// Run connects and pumps events until ctx is cancelled, reconnecting
	// on stream breaks.
	Run(ctx context.Context) error
}

// Package stream implements the push-event channel over a websocket
// connection to the remote collaborator.
package stream

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	models "libris/internal/domain/models/library"
)

const (
	// initialBackoff is the first reconnect delay after a stream break.
	initialBackoff = time.Second
	// maxBackoff caps the reconnect delay.
	maxBackoff = 30 * time.Second
	// eventBuffer is the consumer channel capacity. A full buffer drops
	// events rather than blocking the read loop; the tracker tolerates
	// gaps because every event carries absolute stage+progress.
	eventBuffer = 64
)

// Source maintains a websocket connection to the event endpoint and
// delivers ProcessingEvents on a channel. It reconnects on stream breaks
// with capped exponential backoff.
type Source struct {
	url    string
	token  string
	dialer *websocket.Dialer
	events chan models.ProcessingEvent
	logger *slog.Logger
}

// NewSource creates an event source for the given websocket URL.
func NewSource(url, token string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		url:    url,
		token:  token,
		dialer: websocket.DefaultDialer,
		events: make(chan models.ProcessingEvent, eventBuffer),
		logger: logger,
	}
}

// Events returns the delivery channel. Closed when Run returns.
func (s *Source) Events() <-chan models.ProcessingEvent {
	return s.events
}

// Run connects and pumps events until ctx is cancelled. Always returns
// ctx.Err() once the context ends.
func (s *Source) Run(ctx context.Context) error {
	defer close(s.events)

	backoff := initialBackoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := s.connect(ctx)
		if err != nil {
			s.logger.Warn("event stream connect failed",
				"url", s.url,
				"retry_in", backoff,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		s.logger.Info("event stream established", "url", s.url)
		backoff = initialBackoff

		if err := s.readLoop(ctx, conn); err != nil && ctx.Err() == nil {
			s.logger.Warn("event stream closed", "error", err)
		}
		conn.Close()
	}
}

func (s *Source) connect(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}
	conn, resp, err := s.dialer.DialContext(ctx, s.url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, err
}

// readLoop reads events until the connection breaks or ctx ends.
func (s *Source) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadJSON when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var ev models.ProcessingEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if ev.DocumentID == "" {
			// Keep-alive or malformed frame
			continue
		}

		select {
		case s.events <- ev:
		default:
			// Consumer is behind; drop rather than block the stream.
			s.logger.Warn("event buffer full, dropping event",
				"document_id", ev.DocumentID,
				"stage", ev.Stage,
			)
		}
	}
}

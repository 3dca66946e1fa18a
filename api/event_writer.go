package api

import (
	"bytes"
	"io"
	"sync"
)

// EventWriter is an io.Writer that broadcasts every write as a
// diagnostics event to WebSocket clients subscribed to its session, so
// it can serve as a diag.Logger's output sink. The server's handlers do
// not create one; their events are broadcast directly.
type EventWriter struct {
	broadcaster *Broadcaster
	sessionID   string
	buffer      *bytes.Buffer
	mutex       sync.Mutex
}

// NewEventWriter creates a new event-broadcasting writer for sessionID.
func NewEventWriter(broadcaster *Broadcaster, sessionID string) *EventWriter {
	return &EventWriter{
		broadcaster: broadcaster,
		sessionID:   sessionID,
		buffer:      &bytes.Buffer{},
	}
}

// Write implements io.Writer. It broadcasts the written line as a
// diagnostics event to all subscribed WebSocket clients.
func (w *EventWriter) Write(p []byte) (n int, err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	n, err = w.buffer.Write(p)
	if err == nil && n > 0 && w.broadcaster != nil {
		w.broadcaster.BroadcastDiagnostics(w.sessionID, map[string]interface{}{
			"line": string(p),
		})
	}
	return n, err
}

// GetBufferAndClear returns the buffer contents and clears it.
func (w *EventWriter) GetBufferAndClear() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	output := w.buffer.String()
	w.buffer.Reset()
	return output
}

// GetBuffer returns the current buffer contents without clearing.
func (w *EventWriter) GetBuffer() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.buffer.String()
}

// Ensure EventWriter implements io.Writer.
var _ io.Writer = (*EventWriter)(nil)

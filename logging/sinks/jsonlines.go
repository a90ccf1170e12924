package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"

	"goalline/server/logging"
)

// JSONLinesSink writes one JSON-encoded event per line, suitable for capture
// into a log-aggregation pipeline. Unlike ConsoleSink it never touches the
// stdlib *log.Logger, so timestamps and framing stay entirely under the
// event's own fields.
type JSONLinesSink struct {
	mu sync.Mutex
	w  *bufio.Writer
	c  io.Closer
}

// NewJSONLinesSink wraps w with a buffered writer. If w also implements
// io.Closer, Close flushes and closes it.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	sink := &JSONLinesSink{w: bufio.NewWriter(w)}
	if closer, ok := w.(io.Closer); ok {
		sink.c = closer
	}
	return sink
}

func (s *JSONLinesSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *JSONLinesSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

// Package tracing records one span tree per analysis run: a root span for
// the run and a child per pipeline stage, each carrying the number of rows
// it read and produced. The tree is logged via slog when the run finishes,
// including runs that fail part way.
package tracing

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

type contextKey string

const spanKey contextKey = "trace_span"

// Span is one timed stage of a run.
type Span struct {
	Name      string
	TraceID   string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Children  []*Span
	Attrs     map[string]any

	// RowsIn and RowsOut are -1 until Rows is called.
	RowsIn  int
	RowsOut int
	Err     error
}

func newSpan(name, traceID string) *Span {
	return &Span{
		Name:      name,
		TraceID:   traceID,
		StartTime: time.Now(),
		Children:  make([]*Span, 0),
		Attrs:     make(map[string]any),
		RowsIn:    -1,
		RowsOut:   -1,
	}
}

// StartSpan creates a new root span and stores it in the returned context.
func StartSpan(ctx context.Context, name string, traceID string) (context.Context, *Span) {
	span := newSpan(name, traceID)
	return context.WithValue(ctx, spanKey, span), span
}

// StartChildSpan creates a child span linked to the parent in ctx.
func StartChildSpan(ctx context.Context, name string) (context.Context, *Span) {
	parent := SpanFromContext(ctx)
	child := newSpan(name, "")
	if parent != nil {
		child.TraceID = parent.TraceID
		parent.Children = append(parent.Children, child)
	}
	return context.WithValue(ctx, spanKey, child), child
}

// End records the span's end time and duration. Ending twice keeps the
// first end time.
func (s *Span) End() {
	if !s.EndTime.IsZero() {
		return
	}
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// SetAttr attaches a key-value attribute to the span.
func (s *Span) SetAttr(key string, value any) {
	s.Attrs[key] = value
}

// Rows records how many rows the stage read and how many it passed on.
func (s *Span) Rows(in, out int) {
	s.RowsIn, s.RowsOut = in, out
}

// Fail marks the span as failed. A nil err is ignored.
func (s *Span) Fail(err error) {
	if err != nil {
		s.Err = err
	}
}

// Failed reports whether the span or any descendant failed.
func (s *Span) Failed() bool {
	if s.Err != nil {
		return true
	}
	for _, c := range s.Children {
		if c.Failed() {
			return true
		}
	}
	return false
}

// Child returns the first direct child named name, or nil.
func (s *Span) Child(name string) *Span {
	for _, c := range s.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SpanFromContext extracts the current Span from ctx, or nil if none.
func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey).(*Span); ok {
		return span
	}
	return nil
}

// Log writes the span tree to logger, one record per span. Failed spans
// are logged at error level.
func (s *Span) Log(logger *slog.Logger) {
	s.logRecursive(logger, 0)
}

func (s *Span) logRecursive(logger *slog.Logger, depth int) {
	attrs := []any{
		"trace_id", s.TraceID,
		"span", s.Name,
		"duration_ms", s.Duration.Milliseconds(),
		"depth", depth,
	}
	if s.RowsIn >= 0 {
		attrs = append(attrs, "rows_in", s.RowsIn, "rows_out", s.RowsOut)
	}
	keys := make([]string, 0, len(s.Attrs))
	for k := range s.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, s.Attrs[k])
	}

	if s.Err != nil {
		logger.Error("span", append(attrs, "error", s.Err.Error())...)
	} else {
		logger.Info("span", attrs...)
	}

	for _, child := range s.Children {
		child.logRecursive(logger, depth+1)
	}
}

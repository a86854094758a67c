package tracing

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildSpansAttachToParent(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "pipeline", "run-1")
	_, load := StartChildSpan(ctx, "load")
	_, label := StartChildSpan(ctx, "label")
	load.End()
	label.End()
	root.End()

	require.Len(t, root.Children, 2)
	assert.Equal(t, "run-1", load.TraceID)
	assert.Equal(t, "label", root.Children[1].Name)
	assert.Same(t, root, SpanFromContext(ctx))
	assert.GreaterOrEqual(t, root.Duration, load.Duration)
}

func TestChildSpanWithoutParent(t *testing.T) {
	ctx, span := StartChildSpan(context.Background(), "orphan")

	assert.Empty(t, span.TraceID)
	assert.Same(t, span, SpanFromContext(ctx))
	assert.Nil(t, SpanFromContext(context.Background()))
}

func TestLogWritesTree(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ctx, root := StartSpan(context.Background(), "pipeline", "run-2")
	_, child := StartChildSpan(ctx, "tokenize")
	child.SetAttr("ngrams", 12)
	child.SetAttr("alpha", true)
	child.End()
	root.End()

	root.Log(log)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "span=pipeline")
	assert.Contains(t, lines[1], "span=tokenize")
	assert.Contains(t, lines[1], "depth=1")
	assert.Less(t, strings.Index(lines[1], "alpha=true"), strings.Index(lines[1], "ngrams=12"))
}

func TestLogCarriesRowCountsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ctx, root := StartSpan(context.Background(), "pipeline", "run-3")
	_, label := StartChildSpan(ctx, "label")
	label.Rows(10, 7)
	label.End()
	_, load := StartChildSpan(ctx, "load")
	load.Fail(errors.New("missing column essay0"))
	load.End()
	root.End()

	root.Log(log)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "rows_in")
	assert.Contains(t, lines[1], "rows_in=10 rows_out=7")
	assert.Contains(t, lines[2], "level=ERROR")
	assert.Contains(t, lines[2], `error="missing column essay0"`)
	assert.True(t, root.Failed())
	assert.False(t, label.Failed())
	assert.Same(t, load, root.Child("load"))
	assert.Nil(t, root.Child("render"))
}

func TestEndKeepsFirstEndTime(t *testing.T) {
	_, span := StartSpan(context.Background(), "pipeline", "run-4")
	span.End()
	first := span.EndTime

	span.End()
	span.Fail(nil)

	assert.Equal(t, first, span.EndTime)
	assert.NoError(t, span.Err)
}

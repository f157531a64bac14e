package minigame

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

func newTracedFixture(t *testing.T) (*fixture, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return newFixture(t, func(c *Config) { c.TracerProvider = tp }), rec
}

func spanByName(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, s := range spans {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func TestResolveAction_RecordsSpans(t *testing.T) {
	f, rec := newTracedFixture(t)
	givePickaxe(f.repo, 50)

	_, err := f.svc.ResolveAction(context.Background(), mineRequest())
	require.NoError(t, err)

	spans := rec.Ended()
	root := spanByName(spans, SpanResolveAction)
	require.NotNil(t, root)
	commit := spanByName(spans, SpanCommit)
	require.NotNil(t, commit)

	assert.Equal(t, root.SpanContext().SpanID(), commit.Parent().SpanID(), "commit nests under the action span")
	assert.Contains(t, root.Attributes(), attribute.String(AttrAreaKey, "mine"))
	assert.Contains(t, root.Attributes(), attribute.String(AttrOutcome, RunOutcomeCompleted))
	assert.Equal(t, codes.Unset, root.Status().Code)
}

func TestResolveAction_RejectionMarksSpan(t *testing.T) {
	f, rec := newTracedFixture(t)

	_, err := f.svc.ResolveAction(context.Background(), mineRequest())
	require.ErrorIs(t, err, domain.ErrMissingTool)

	root := spanByName(rec.Ended(), SpanResolveAction)
	require.NotNil(t, root)
	assert.Equal(t, codes.Error, root.Status().Code)
	assert.Equal(t, domain.ErrorTagMissingTool, root.Status().Description)
	assert.Nil(t, spanByName(rec.Ended(), SpanCommit), "rejected before the transaction opens")
}

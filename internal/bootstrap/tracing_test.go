package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/osse101/ActionEngine_Go/internal/config"
	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// keepGlobalProvider restores the process-wide tracer provider after a test
func keepGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestSetupTracing_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"flag off", config.Config{OTelEnabled: false, OTelEndpoint: "http://localhost:4318"}},
		{"no endpoint", config.Config{OTelEnabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := otel.GetTracerProvider()

			tp, err := SetupTracing(context.Background(), &tt.cfg)
			require.NoError(t, err)
			assert.Nil(t, tp)
			assert.Equal(t, before, otel.GetTracerProvider())
		})
	}
}

func TestSetupTracing_InstallsGlobalProvider(t *testing.T) {
	keepGlobalProvider(t)
	// non-routable address; nothing is exported because no span is started
	cfg := &config.Config{OTelEnabled: true, OTelEndpoint: "http://192.0.2.1:4318", OTelSampleRatio: 1}

	tp, err := SetupTracing(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracerProvider_ExportsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	cfg := &config.Config{Version: "1.2.3", OTelSampleRatio: 1}

	tp, err := newTracerProvider(context.Background(), cfg, exporter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "work")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "work", spans[0].Name)
	attrs := spans[0].Resource.Attributes()
	var service string
	for _, kv := range attrs {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, logger.DefaultServiceName, service)
}

func TestNewTracerProvider_ZeroRatioDropsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp, err := newTracerProvider(context.Background(), &config.Config{OTelSampleRatio: 0}, exporter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "dropped")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))
	assert.Empty(t, exporter.GetSpans())
}

// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func resetProvider(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _, _ = NewProvider(context.Background(), Config{}) })
}

func TestNewProvider_DisabledInstallsNoop(t *testing.T) {
	resetProvider(t)
	p, err := NewProvider(context.Background(), Config{ExporterType: ExporterGRPC})
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	_, span := otel.Tracer("camlife").Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.IsRecording())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ExporterType: "zipkin"})
	require.ErrorIs(t, err, ErrUnsupportedExporter)
	assert.Contains(t, err.Error(), `"zipkin"`)
}

func TestNewProviderWithExporter_RecordsSpans(t *testing.T) {
	resetProvider(t)
	exp := tracetest.NewInMemoryExporter()
	p, err := NewProviderWithExporter(context.Background(), Config{ServiceName: "camlife-test"}, exp)
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	_, span := Tracer("camera.machine").Start(context.Background(), "camera.open")
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "camera.open", spans[0].Name)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderWithExporter_RequiresExporter(t *testing.T) {
	_, err := NewProviderWithExporter(context.Background(), Config{}, nil)
	assert.Error(t, err)
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, samplerFor(tt.rate).Description(), "rate %v", tt.rate)
	}
}

func TestProvider_ShutdownOnce(t *testing.T) {
	resetProvider(t)
	p, err := NewProviderWithExporter(context.Background(), Config{}, tracetest.NewInMemoryExporter())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Shutdown(context.Background()))
		}()
	}
	wg.Wait()
}

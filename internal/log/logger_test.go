// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "debug", Output: &buf, Service: "camlife-test", Version: "v0.0.0"})
	t.Cleanup(func() { Reconfigure(Config{Level: "info"}) })

	l := WithComponent("camera.machine")
	l.Info().Str(FieldOp, "initialize").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "camera.machine", entry[FieldComponent])
	assert.Equal(t, "camlife-test", entry["service"])
	assert.Equal(t, "v0.0.0", entry["version"])
	assert.Equal(t, "initialize", entry[FieldOp])
}

func TestConfigure_IsOnce(t *testing.T) {
	var first, second bytes.Buffer
	Reconfigure(Config{Level: "info", Output: &first})
	t.Cleanup(func() { Reconfigure(Config{Level: "info"}) })

	Configure(Config{Level: "info", Output: &second})
	l := Base()
	l.Info().Msg("x")

	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestFromContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	Reconfigure(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Reconfigure(Config{Level: "info"}) })

	ctx := ContextWithRunID(context.Background(), "run-42")
	assert.Equal(t, "run-42", RunIDFromContext(ctx))
	FromContext(ctx).Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-42", entry[FieldRunID])
}

func TestFromContext_PrefersAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	attached := zerolog.New(&buf).With().Str("attached", "yes").Logger()
	ctx := attached.WithContext(context.Background())

	FromContext(ctx).Info().Msg("x")
	assert.Contains(t, buf.String(), `"attached":"yes"`)
}

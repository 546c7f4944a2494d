package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "backoffice-test", Level: "info", Output: &buf})

	log.Info(context.Background(), "server started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backoffice-test", entry["service"])
	assert.Equal(t, "server started", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "backoffice-test", Level: "warn", Output: &buf})

	log.Info(context.Background(), "should be dropped")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "low stock", nil)
	assert.NotZero(t, buf.Len())
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "backoffice-test", Level: "info", Output: &buf})

	ctx := log.WithContext(context.Background())
	got := FromContext(ctx)
	require.NotNil(t, got)

	got.Info(ctx, "from context")
	assert.Contains(t, buf.String(), "from context")
}

func TestFromContextFallsBackToNop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	log.Error(context.Background(), "must not panic", errors.New("boom"))
}

func TestWithFieldsAttached(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "backoffice-test", Level: "info", Output: &buf})

	log.WithRequestID("req-1").WithUserID("user-1").WithField("route", "/api/products").
		Info(context.Background(), "request complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "/api/products", entry["route"])
}

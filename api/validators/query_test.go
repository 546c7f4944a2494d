package validators

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

func TestParseQueryIntDefaultsAndBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=30", nil)
	got, err := ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	r = httptest.NewRequest("GET", "/?limit=9999", nil)
	_, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	_, err = ParseQueryInt(r, "limit", 20, 1, 100)
	require.Error(t, err)
}

func TestParseQueryDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/?start_date=2026-08-15", nil)
	got, err := ParseQueryDate(r, "start_date")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), *got)

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryDate(r, "start_date")
	require.NoError(t, err)
	assert.Nil(t, got)

	r = httptest.NewRequest("GET", "/?start_date=15-08-2026", nil)
	_, err = ParseQueryDate(r, "start_date")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	r := httptest.NewRequest("POST", "/", io.NopCloser(strings.NewReader(`{"name":"ok","bogus":true}`)))
	var dest payload
	err := DecodeJSONBody(r, &dest)
	require.Error(t, err, "unknown fields must be rejected")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	r = httptest.NewRequest("POST", "/", io.NopCloser(strings.NewReader(`{}`)))
	dest = payload{}
	err = DecodeJSONBody(r, &dest)
	require.Error(t, err, "missing required fields must be rejected")

	r = httptest.NewRequest("POST", "/", io.NopCloser(strings.NewReader(`{"name":"ok"}`)))
	dest = payload{}
	require.NoError(t, DecodeJSONBody(r, &dest))
	assert.Equal(t, "ok", dest.Name)
}

package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeNotFound, "product not found")
	require.NotNil(t, err)
	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, "product not found", err.Message())
	assert.Equal(t, "NOT_FOUND: product not found", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "redis unavailable")
	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeConflict, "duplicate product code")
	wrapped := fmt.Errorf("create product: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeConflict, typed.Code())

	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, MetadataFor(CodeRateLimit).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("UNKNOWN")).HTTPStatus)
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("root cause")
	err := Wrap(CodeInternal, cause, "wrapper")
	dump := Dump(err)
	require.NotNil(t, dump)
	assert.Equal(t, CodeInternal, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Nil(t, Dump(nil))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"field": "price"})
	require.NotNil(t, err.Details())
}

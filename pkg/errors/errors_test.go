package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCode(t *testing.T) {
	meta := MetadataFor(CodeBelowMinimumOrder)
	require.Equal(t, http.StatusUnprocessableEntity, meta.HTTPStatus)
	require.True(t, meta.DetailsAllowed)
	require.False(t, meta.Retryable)
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	require.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "load coupon")

	require.Equal(t, CodeDependency, err.Code())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "DEPENDENCY_ERROR: load coupon", err.Error())
}

func TestAsUnwrapsThroughFmtWrapping(t *testing.T) {
	inner := New(CodeSelfUseProhibited, "cannot redeem own code")
	wrapped := fmt.Errorf("apply code: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	require.Equal(t, CodeSelfUseProhibited, typed.Code())
	require.True(t, HasCode(wrapped, CodeSelfUseProhibited))
	require.False(t, HasCode(wrapped, CodeEmptyCode))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"field": "is required"})
	require.Equal(t, map[string]string{"field": "is required"}, err.Details())
}

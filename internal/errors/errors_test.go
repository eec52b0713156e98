package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder_ConfigError(t *testing.T) {
	err := ConfigError("configuration file not found").
		WithContext("file", "site.yaml").
		Build()

	require.Equal(t, CategoryConfig, err.Category())
	require.Equal(t, SeverityFatal, err.Severity())
	require.True(t, err.IsFatal())
	require.False(t, err.CanRetry())

	file, ok := err.Context().GetString("file")
	require.True(t, ok)
	require.Equal(t, "site.yaml", file)
}

func TestWrapError_UnwrapsThroughFmt(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("fetch README.md: %w", NetworkError("remote fetch failed").WithCause(cause).Build())

	ce, ok := AsClassified(err)
	require.True(t, ok)
	require.Equal(t, CategoryNetwork, ce.Category())
	require.True(t, IsRetryable(err))
	require.ErrorIs(t, err, cause)
	require.True(t, HasCategory(err, CategoryNetwork))
}

func TestGetCategory_Unclassified(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("boom")))
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	base := ValidationError("bad item").Build()
	withPath := base.WithContext("path", "docSidebar[0]")

	_, ok := base.Context().Get("path")
	require.False(t, ok)
	require.Contains(t, withPath.Error(), "docSidebar[0]")
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{ValidationError("v").Build(), 2},
		{LinkError("l").Build(), 3},
		{NotFoundError("n").Build(), 4},
		{ConfigError("c").Build(), 7},
		{NetworkError("n").Build(), 8},
		{InternalError("i").Build(), 10},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, a.ExitCodeFor(tc.err), "%v", tc.err)
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	err := ValidationError("category has no items").WithContext("path", "docSidebar[1]").Build()
	require.Equal(t, "category has no items (docSidebar[1])", a.FormatError(err))

	net := NetworkError("remote fetch failed").Build()
	require.Equal(t, "network: remote fetch failed", a.FormatError(net))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Equal(t, net.Error(), verbose.FormatError(net))
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	a := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/_nav/missing.json", nil)

	a.WriteErrorResponse(rec, req, NotFoundError("sidebar not found").WithContext("sidebar", "missing").Build())

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "sidebar not found", body.Error)
	require.Equal(t, "not_found", body.Code)
	require.Equal(t, "missing", body.Details["sidebar"])
}

package outcome

import (
	"errors"
	"fmt"
	"testing"

	"front-auditor/internal/apperr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Result
	}{
		{
			name: "session expired is informative",
			err:  fmt.Errorf("get listing: %w", apperr.New(apperr.KindSessionExpired, "portal.get", nil)),
			expected: Result{
				Status:    StatusInformative,
				Message:   apperr.KindSessionExpired.Message(),
				ErrorCode: 400,
			},
		},
		{
			name: "transport",
			err:  apperr.ErrTransport,
			expected: Result{
				Status:    StatusError,
				Message:   "No hay conexión a Internet.",
				ErrorCode: 100,
			},
		},
		{
			name: "untyped",
			err:  errors.New("boom"),
			expected: Result{
				Status:    StatusError,
				Message:   apperr.KindUnknown.Message(),
				ErrorCode: 1,
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.expected, FromError(test.err)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	ok := Aggregate("Reportes impresos.", []string{"/tmp/a.pdf"}, nil)
	require.True(t, ok.OK())
	require.Equal(t, []string{"/tmp/a.pdf"}, ok.Payload.Files)
	require.NoError(t, ok.Errors())

	failure := Step("rpt_cajeros.pdf", apperr.ErrWrite)
	partial := Aggregate("Reportes impresos.", []string{"/tmp/b.pdf"}, []Result{failure})
	require.Equal(t, StatusError, partial.Status)
	require.Equal(t, 500, partial.ErrorCode)
	require.Len(t, partial.Payload.Errors, 1)
	require.Equal(t, []string{"/tmp/b.pdf"}, partial.Payload.Files)
	require.ErrorContains(t, partial.Errors(), "rpt_cajeros.pdf")

	many := Aggregate("", nil, []Result{failure, failure})
	require.Equal(t, "Algunos pasos fallaron.", many.Message)

	expired := Step("rpt_cajeros.pdf", apperr.ErrSessionExpired)
	informative := Aggregate("", nil, []Result{expired, expired})
	require.Equal(t, StatusInformative, informative.Status)

	mixed := Aggregate("", nil, []Result{expired, failure})
	require.Equal(t, StatusError, mixed.Status)
}

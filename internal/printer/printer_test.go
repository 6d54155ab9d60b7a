package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"front-auditor/internal/apperr"
	"front-auditor/lib/testutil"

	"github.com/stretchr/testify/require"
)

// TestHelperProcess stands in for the print command when re-executed by
// the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("FRONT_AUDITOR_HELPER") != "1" {
		return
	}
	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	if len(args) > 0 && args[0] == "fail" {
		fmt.Fprint(os.Stderr, "printer offline")
		os.Exit(2)
	}
	os.Exit(0)
}

func helperCommand(mode string) []string {
	return []string{os.Args[0], "-test.run=TestHelperProcess", "--", mode, FilePlaceholder}
}

func TestArgs(t *testing.T) {
	testCases := []struct {
		command  []string
		expected []string
	}{
		{
			command:  []string{"lp", FilePlaceholder},
			expected: []string{"lp", "/tmp/a.pdf"},
		},
		{
			command:  []string{"lp"},
			expected: []string{"lp", "/tmp/a.pdf"},
		},
		{
			command:  []string{"sh", "-c", "print '" + FilePlaceholder + "'"},
			expected: []string{"sh", "-c", "print '/tmp/a.pdf'"},
		},
	}

	for _, test := range testCases {
		p := NewCommandPrinter(test.command, testutil.NewTelemetryRecorder(t))
		require.Equal(t, test.expected, p.args("/tmp/a.pdf"))
	}
}

func TestDefaultCommandHasPlaceholder(t *testing.T) {
	found := false
	for _, arg := range DefaultCommand() {
		if strings.Contains(arg, FilePlaceholder) {
			found = true
		}
	}
	require.True(t, found)

	p := NewCommandPrinter(nil, testutil.NewTelemetryRecorder(t))
	require.Equal(t, len(DefaultCommand()), len(p.args("x.pdf")))
}

func TestPrint(t *testing.T) {
	t.Setenv("FRONT_AUDITOR_HELPER", "1")

	file := filepath.Join(t.TempDir(), "rpt_cajeros.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF"), 0600))

	tel := testutil.NewTelemetryRecorder(t)
	ok := NewCommandPrinter(helperCommand("ok"), tel)
	require.NoError(t, ok.Print(context.Background(), file))

	failing := NewCommandPrinter(helperCommand("fail"), tel)
	err := failing.Print(context.Background(), file)
	require.ErrorIs(t, err, apperr.ErrPrint)
	require.ErrorContains(t, err, "printer offline")
	require.Len(t, tel.Events("broken"), 1)
}

func TestPrintMissingFile(t *testing.T) {
	p := NewCommandPrinter(helperCommand("ok"), testutil.NewTelemetryRecorder(t))
	err := p.Print(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.ErrorIs(t, err, apperr.ErrReportNotFound)
}

package operation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"front-auditor/internal/apperr"
	"front-auditor/internal/menu"
	"front-auditor/internal/outcome"
	"front-auditor/internal/reports"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const auditListing = `<table>
	<tr><td><a href="p_OpenFile.aspx?file=CECJS20230506.zip">CECJS20230506.zip</a></td></tr>
	<tr><td><a href="p_OpenFile.aspx?file=CECJS20230507.zip">CECJS20230507.zip</a></td></tr>
	<tr><td><a href="p_OpenFile.aspx?file=CECJS20230508.zip">CECJS20230508.zip</a></td></tr>
</table>`

// serveArchive makes the audit download url return a zip holding one pdf per
// report name.
func (h *harness) serveArchive(t *testing.T, name string, reportNames []string) {
	t.Helper()
	path := filepath.Join(h.fixtures, name)
	out, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(out)
	for _, report := range reportNames {
		w, err := writer.Create(report + ".pdf")
		require.NoError(t, err)
		_, err = w.Write([]byte("%PDF " + report))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, out.Close())

	h.portal.files[testEnvironment.AuditDownloadURL+name] = path
}

func allReports() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, job := range reports.PrintJobs(reports.Roles) {
		if !seen[job.Report] {
			seen[job.Report] = true
			names = append(names, job.Report)
		}
	}
	return names
}

func TestAuditoria(t *testing.T) {
	h := newHarness(t, fakeCredentials{})
	h.portal.pages[testEnvironment.AuditListURL] = auditListing
	h.serveArchive(t, "CECJS20230507.zip", allReports())

	res := h.manager.Perform(context.Background(), menu.ChoiceAudit)
	require.Equal(t, outcome.StatusSuccess, res.Status, res.Message)

	jobs := reports.PrintJobs(reports.Roles)
	require.Len(t, h.printer.printed, len(jobs))
	for i, job := range jobs {
		require.Equal(t, job.FileName(), filepath.Base(h.printer.printed[i]))
	}

	dated := filepath.Join(h.tempDir, "08-05-2023")
	require.FileExists(t, filepath.Join(dated, "rpt_todaychin.pdf"))
	require.Equal(t, dated, filepath.Dir(h.printer.printed[0]))
}

func TestAuditoriaMissingReport(t *testing.T) {
	h := newHarness(t, fakeCredentials{})
	h.portal.pages[testEnvironment.AuditListURL] = auditListing

	available := []string{}
	for _, name := range allReports() {
		if name != "rpt_CancelAdjust" {
			available = append(available, name)
		}
	}
	h.serveArchive(t, "CECJS20230507.zip", available)

	res := h.manager.Perform(context.Background(), menu.ChoiceAudit)
	require.Equal(t, outcome.StatusError, res.Status)

	// accountant, manager and sales manager each expect a copy
	require.Len(t, res.Payload.Errors, 3)
	for _, e := range res.Payload.Errors {
		require.Equal(t, apperr.KindReportNotFound.Code(), e.ErrorCode)
		require.Contains(t, e.Message, "rpt_CancelAdjust.pdf")
	}
	require.Len(t, h.printer.printed, len(reports.PrintJobs(reports.Roles))-3)
}

func TestAuditoriaFailures(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, h *harness)
		code  int
	}{
		{
			name: "listing with a single archive",
			setup: func(t *testing.T, h *harness) {
				h.portal.pages[testEnvironment.AuditListURL] = `<a href="p_OpenFile.aspx?file=CECJS1.zip">CECJS1.zip</a>`
			},
			code: apperr.KindReportNotFound.Code(),
		},
		{
			name: "session expired",
			setup: func(t *testing.T, h *harness) {
				h.portal.failures[testEnvironment.AuditListURL] = apperr.ErrSessionExpired
			},
			code: apperr.KindSessionExpired.Code(),
		},
		{
			name: "corrupt archive",
			setup: func(t *testing.T, h *harness) {
				h.portal.pages[testEnvironment.AuditListURL] = auditListing
				h.serveFile(t, testEnvironment.AuditDownloadURL+"CECJS20230507.zip", "CECJS20230507.zip", "not a zip")
			},
			code: apperr.KindDecompress.Code(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, fakeCredentials{})
			tc.setup(t, h)

			res := h.manager.Perform(context.Background(), menu.ChoiceAudit)
			require.False(t, res.OK())
			require.Equal(t, tc.code, res.ErrorCode)
			require.Empty(t, h.printer.printed)
		})
	}
}

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"front-auditor/internal/apperr"
	"front-auditor/internal/outcome"
	"front-auditor/internal/reports"
)

const report_auditoria_printed = "manager.auditoria-printed"

// auditoria downloads the latest audit archive, extracts it into a dated
// directory and prints each role's reports.
func (m *Manager) auditoria(ctx context.Context) outcome.Result {
	ctx, span := tracer.Start(ctx, "manager:auditoria")
	defer span.End()

	m.tel.ReportDebug("looking for latest audit archive")
	listing, err := m.portal.AuthenticatedGet(ctx, m.env.AuditListURL)
	if err != nil {
		return outcome.FromError(err)
	}
	name, err := reports.LatestArchiveName(listing)
	if err != nil {
		return outcome.FromError(err)
	}

	m.tel.ReportDebug("downloading", name)
	archive, err := m.portal.AuthenticatedDownload(ctx, m.env.AuditDownloadURL+name, name)
	if err != nil {
		return outcome.FromError(err)
	}

	dest := reports.DatedDir(m.env.TempDir, m.now())
	extracted, err := reports.Extract(archive, dest)
	if err != nil {
		return outcome.FromError(err)
	}

	pdfs := map[string]string{}
	for _, path := range extracted {
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfs[filepath.Base(path)] = path
		}
	}

	printed := []string{}
	var failures []outcome.Result
	for _, job := range reports.PrintJobs(reports.Roles) {
		step := job.Role.Label + ": " + job.FileName()
		path, ok := pdfs[job.FileName()]
		if !ok {
			failures = append(failures, outcome.Step(step, apperr.New(apperr.KindReportNotFound, "auditoria", nil)))
			continue
		}
		err = m.printer.Print(ctx, path)
		if err != nil {
			failures = append(failures, outcome.Step(step, err))
			continue
		}
		printed = append(printed, path)
	}

	m.tel.ReportCount(report_auditoria_printed, int64(len(printed)))
	return outcome.Aggregate("Reportes de auditoría enviados a la impresora.", printed, failures)
}

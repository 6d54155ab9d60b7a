package operation

import (
	"context"

	"front-auditor/internal/outcome"
	"front-auditor/internal/reports"
)

const cobroReportName = "rpt_cobro_por_operador.pdf"

// cobro asks the portal to generate the per-operator collection report,
// then downloads and prints it.
func (m *Manager) cobro(ctx context.Context) outcome.Result {
	ctx, span := tracer.Start(ctx, "manager:cobro")
	defer span.End()

	page, err := m.portal.AuthenticatedGet(ctx, m.env.CobroGenerateURL)
	if err != nil {
		return outcome.FromError(err)
	}
	id, err := reports.ReportSessionID(page)
	if err != nil {
		return outcome.FromError(err)
	}

	path, err := m.portal.AuthenticatedDownload(ctx, m.env.CobroDownloadURL+id, cobroReportName)
	if err != nil {
		return outcome.FromError(err)
	}
	return m.printAll(ctx, "Reporte de cobro por operador enviado a la impresora.", []string{path})
}

package operation

import (
	"context"
	"sync"

	"front-auditor/internal/outcome"
)

// fixed names so the concurrent downloads never collide
const (
	corteReportName           = "rpt_cajeros.pdf"
	corteIndividualReportName = "rpt_cajeroindividual.pdf"
)

type download struct {
	name string
	url  string
}

// userReportURL appends the portal's per-user filter to a report url.
func userReportURL(base, username string) string {
	return base + "=" + username + "|AND;"
}

// corte downloads both cashier reports in parallel and prints them only if
// both arrived.
func (m *Manager) corte(ctx context.Context) outcome.Result {
	ctx, span := tracer.Start(ctx, "manager:corte")
	defer span.End()

	username := m.session.Username()
	downloads := []download{
		{name: corteReportName, url: userReportURL(m.env.ReportURL, username)},
		{name: corteIndividualReportName, url: userReportURL(m.env.ReportIndividualURL, username)},
	}

	paths := make([]string, len(downloads))
	var failures []outcome.Result
	var wg sync.WaitGroup
	var mutex sync.Mutex
	for i, d := range downloads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.tel.ReportDebug("downloading", d.name)
			path, err := m.portal.AuthenticatedDownload(ctx, d.url, d.name)

			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				failures = append(failures, outcome.Step(d.name, err))
				return
			}
			paths[i] = path
		}()
	}
	wg.Wait()

	files := []string{}
	for _, p := range paths {
		if p != "" {
			files = append(files, p)
		}
	}
	if len(failures) > 0 {
		return outcome.Aggregate("", files, failures)
	}

	return m.printAll(ctx, "Reportes de corte enviados a la impresora.", files)
}

// printAll sends every file to the printer and collects the failures.
func (m *Manager) printAll(ctx context.Context, message string, files []string) outcome.Result {
	var failures []outcome.Result
	for _, path := range files {
		err := m.printer.Print(ctx, path)
		if err != nil {
			failures = append(failures, outcome.Step(path, err))
		}
	}
	return outcome.Aggregate(message, files, failures)
}

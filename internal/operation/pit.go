package operation

import (
	"context"
	"fmt"
	"path/filepath"

	"front-auditor/internal/outcome"
	"front-auditor/internal/pit"
)

func (m *Manager) checkPIT(ctx context.Context) outcome.Result {
	ctx, span := tracer.Start(ctx, "manager:checkPIT")
	defer span.End()

	page, err := m.portal.AuthenticatedGet(ctx, m.env.PitURL)
	if err != nil {
		return outcome.FromError(err)
	}
	reservations, err := pit.ParseListing(page)
	if err != nil {
		return outcome.FromError(err)
	}

	path, err := pit.WritePage(filepath.Join(m.env.TempDir, "pit"), reservations, m.now())
	if err != nil {
		return outcome.FromError(err)
	}

	res := outcome.Success(fmt.Sprintf("PIT generado con %d reservaciones: %s", len(reservations), path))
	res.Payload = &outcome.Payload{Files: []string{path}}
	return res
}

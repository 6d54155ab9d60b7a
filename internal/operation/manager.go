package operation

import (
	"context"
	"time"

	"front-auditor/internal/apperr"
	"front-auditor/internal/config"
	"front-auditor/internal/menu"
	"front-auditor/internal/outcome"
	"front-auditor/internal/portal"
	"front-auditor/internal/printer"
	"front-auditor/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("front-auditor/operation")
	meter  = otel.Meter("front-auditor/operation")
)

const report_manager_perform = "manager.perform"

// Portal is the subset of portal.Client the operations use.
type Portal interface {
	Login(ctx context.Context, creds portal.Credentials) (string, error)
	AuthenticatedGet(ctx context.Context, url string) ([]byte, error)
	AuthenticatedDownload(ctx context.Context, url, destinationName string) (string, error)
}

// CredentialsPrompter asks the user for login details.
type CredentialsPrompter interface {
	Input(ctx context.Context, question string) (string, error)
	Password(ctx context.Context, question string) (string, error)
}

type Session interface {
	Username() string
}

type ManagerOptions struct {
	Schema      menu.Schema
	Portal      Portal
	Printer     printer.Printer
	Prompter    CredentialsPrompter
	Session     Session
	Environment config.Environment
	Telemetry   telemetry.API
	// defaults to time.Now
	Now func() time.Time
}

// Manager maps menu actions to portal work and turns every outcome into an
// outcome.Result.
type Manager struct {
	schema   menu.Schema
	portal   Portal
	printer  printer.Printer
	prompter CredentialsPrompter
	session  Session
	env      config.Environment
	tel      telemetry.API
	now      func() time.Time

	operations metric.Int64Counter
	actions    map[string]func(context.Context) outcome.Result
}

func NewManager(opts ManagerOptions) (*Manager, error) {
	counter, err := meter.Int64Counter(
		"front_auditor.operations",
		metric.WithDescription("Menu actions performed, by action and status."),
	)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Manager{
		schema:     opts.Schema,
		portal:     opts.Portal,
		printer:    opts.Printer,
		prompter:   opts.Prompter,
		session:    opts.Session,
		env:        opts.Environment,
		tel:        opts.Telemetry,
		now:        now,
		operations: counter,
	}
	m.actions = map[string]func(context.Context) outcome.Result{
		menu.ChoiceLogin:    m.login,
		menu.ChoiceCorte:    m.corte,
		menu.ChoiceAudit:    m.auditoria,
		menu.ChoiceCobro:    m.cobro,
		menu.ChoiceCheckPIT: m.checkPIT,
	}
	return m, nil
}

func (m *Manager) Classify(choice string) (menu.Category, error) {
	return m.schema.Classify(choice)
}

// Perform runs the action named by choice. Unknown actions give an
// "INVALID OPERATION" error result.
func (m *Manager) Perform(ctx context.Context, choice string) outcome.Result {
	ctx, span := tracer.Start(ctx, "manager:Perform")
	defer span.End()
	span.SetAttributes(attribute.String("action", choice))

	action, ok := m.actions[choice]
	var res outcome.Result
	if ok {
		res = action(ctx)
	} else {
		m.tel.ReportWarning(report_manager_perform, "unknown action", choice)
		res = outcome.FromError(apperr.New(apperr.KindInvalidChoice, "perform "+choice, nil))
	}

	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", choice),
		attribute.String("status", string(res.Status)),
	))
	if !res.OK() {
		m.tel.ReportDebug("operation failed", choice, res.Message, res.ErrorCode, res.Errors())
	}
	return res
}

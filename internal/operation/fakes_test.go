package operation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"front-auditor/internal/apperr"
	"front-auditor/internal/config"
	"front-auditor/internal/menu"
	"front-auditor/internal/portal"
	"front-auditor/lib/testutil"

	"github.com/stretchr/testify/require"
)

// fakePortal serves pages and downloads from maps keyed by url. Downloads
// listed in failures return that error instead.
type fakePortal struct {
	dir       string
	pages     map[string]string
	files     map[string]string
	failures  map[string]error
	loginErr  error
	mutex     sync.Mutex
	logins    []portal.Credentials
	requested []string
}

func (p *fakePortal) Login(_ context.Context, creds portal.Credentials) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.logins = append(p.logins, creds)
	if p.loginErr != nil {
		return "", p.loginErr
	}
	return "TOKEN", nil
}

func (p *fakePortal) AuthenticatedGet(_ context.Context, url string) ([]byte, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.requested = append(p.requested, url)
	if err, ok := p.failures[url]; ok {
		return nil, err
	}
	page, ok := p.pages[url]
	if !ok {
		return nil, apperr.New(apperr.KindReportNotFound, "get "+url, nil)
	}
	return []byte(page), nil
}

func (p *fakePortal) AuthenticatedDownload(_ context.Context, url, name string) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.requested = append(p.requested, url)
	if err, ok := p.failures[url]; ok {
		return "", err
	}
	src, ok := p.files[url]
	if !ok {
		return "", apperr.New(apperr.KindReportNotFound, "download "+url, nil)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(p.dir, name)
	err = os.WriteFile(dest, data, 0644)
	if err != nil {
		return "", err
	}
	return dest, nil
}

type fakePrinter struct {
	mutex   sync.Mutex
	printed []string
	fail    map[string]error
}

func (p *fakePrinter) Print(_ context.Context, path string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if err, ok := p.fail[filepath.Base(path)]; ok {
		return err
	}
	p.printed = append(p.printed, path)
	return nil
}

func (p *fakePrinter) names() []string {
	names := make([]string, len(p.printed))
	for i, path := range p.printed {
		names[i] = filepath.Base(path)
	}
	return names
}

type fakeCredentials struct {
	username string
	password string
	err      error
}

func (c fakeCredentials) Input(context.Context, string) (string, error) {
	return c.username, c.err
}

func (c fakeCredentials) Password(context.Context, string) (string, error) {
	return c.password, c.err
}

type fakeSession string

func (s fakeSession) Username() string { return string(s) }

var testEnvironment = config.Environment{
	ReportURL:           "https://portal.test/rpt_cajeros?filter",
	ReportIndividualURL: "https://portal.test/rpt_cajeroindividual?filter",
	AuditListURL:        "https://portal.test/audit/list",
	AuditDownloadURL:    "https://portal.test/audit/p_OpenFile.aspx?file=",
	CobroGenerateURL:    "https://portal.test/cobro/generate",
	CobroDownloadURL:    "https://portal.test/cobro/download?ReportSession=",
	PitURL:              "https://portal.test/pit",
}

type harness struct {
	manager  *Manager
	portal   *fakePortal
	printer  *fakePrinter
	tempDir  string
	fixtures string
}

func newHarness(t *testing.T, creds fakeCredentials) *harness {
	t.Helper()
	root := t.TempDir()
	downloads := filepath.Join(root, "downloads")
	fixtures := filepath.Join(root, "fixtures")
	require.NoError(t, os.MkdirAll(downloads, 0755))
	require.NoError(t, os.MkdirAll(fixtures, 0755))

	env := testEnvironment
	env.TempDir = filepath.Join(root, "temp")

	p := &fakePortal{
		dir:      downloads,
		pages:    map[string]string{},
		files:    map[string]string{},
		failures: map[string]error{},
	}
	pr := &fakePrinter{fail: map[string]error{}}
	manager, err := NewManager(ManagerOptions{
		Schema:      menu.DefaultSchema(),
		Portal:      p,
		Printer:     pr,
		Prompter:    creds,
		Session:     fakeSession("alice"),
		Environment: env,
		Telemetry:   testutil.NewTelemetryRecorder(t),
		Now: func() time.Time {
			return time.Date(2023, time.May, 8, 23, 30, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)

	return &harness{
		manager:  manager,
		portal:   p,
		printer:  pr,
		tempDir:  env.TempDir,
		fixtures: fixtures,
	}
}

// serveFile makes url download a fixture with the given contents.
func (h *harness) serveFile(t *testing.T, url, name, contents string) {
	t.Helper()
	path := filepath.Join(h.fixtures, strings.ReplaceAll(name, "/", "_"))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	h.portal.files[url] = path
}

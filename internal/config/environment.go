package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"front-auditor/lib/configutil"
)

const EnvironmentFile = "front.json5"

const (
	DefaultLoginURL  = "https://65.61.146.77/WHS-PMS/Account/Login.aspx"
	DefaultLoginPath = "/WHS-PMS/Account/Login.aspx"
	DefaultSessionID = "5ag503ou0yg1tjhrbwmsi1x0"
	DefaultTimeout   = 60
)

// Environment holds the portal endpoints and local paths. It is read from
// front.json5 (plus front.local.json5) and then overridden key by key from
// process environment variables of the same name.
type Environment struct {
	LoginURL            string `json:"API_URL_LOGIN"`
	ReportURL           string `json:"API_URL_REPORT"`
	ReportIndividualURL string `json:"API_URL_REPORT_INDV"`
	AuditListURL        string `json:"API_URL_AUDI_RPT_LIST"`
	AuditDownloadURL    string `json:"API_URL_AUDI_RPT"`
	CobroGenerateURL    string `json:"API_URL_COBRO_RPT_GENERATE"`
	CobroDownloadURL    string `json:"API_URL_COBRO_RPT_DOWNLOAD"`
	PitURL              string `json:"API_URL_PIT"`
	SessionID           string `json:"ASPNET_SESSION_ID"`

	// path that marks a redirect to the login form
	LoginPath string `json:"login_path"`
	TempDir   string `json:"temp_dir"`
	// when set, every http exchange is dumped here with credentials redacted
	HTTPDumpDir    string   `json:"http_dump_dir"`
	PrinterCommand []string `json:"printer_command"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	// nil means true, the portal serves a self-signed certificate
	InsecureSkipVerify *bool `json:"insecure_skip_verify"`
}

func (e Environment) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

func (e Environment) Insecure() bool {
	return e.InsecureSkipVerify == nil || *e.InsecureSkipVerify
}

func (e *Environment) fields() map[string]*string {
	return map[string]*string{
		"API_URL_LOGIN":              &e.LoginURL,
		"API_URL_REPORT":             &e.ReportURL,
		"API_URL_REPORT_INDV":        &e.ReportIndividualURL,
		"API_URL_AUDI_RPT_LIST":      &e.AuditListURL,
		"API_URL_AUDI_RPT":           &e.AuditDownloadURL,
		"API_URL_COBRO_RPT_GENERATE": &e.CobroGenerateURL,
		"API_URL_COBRO_RPT_DOWNLOAD": &e.CobroDownloadURL,
		"API_URL_PIT":                &e.PitURL,
		"ASPNET_SESSION_ID":          &e.SessionID,
	}
}

// ApplyOverrides replaces fields with the values returned by lookup, which
// is normally os.LookupEnv.
func (e *Environment) ApplyOverrides(lookup func(string) (string, bool)) {
	for key, field := range e.fields() {
		value, ok := lookup(key)
		if ok && value != "" {
			*field = value
		}
	}
}

func (e *Environment) applyDefaults() error {
	if e.LoginURL == "" {
		e.LoginURL = DefaultLoginURL
	}
	if e.LoginPath == "" {
		e.LoginPath = DefaultLoginPath
	}
	if e.SessionID == "" {
		e.SessionID = DefaultSessionID
	}
	if e.TempDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve temp dir: %w", err)
		}
		e.TempDir = filepath.Join(home, "Documents", "reportes-front-temp")
	}
	return nil
}

// Missing returns the names of the endpoint keys that are still empty.
func (e *Environment) Missing() []string {
	var missing []string
	for key, field := range e.fields() {
		if *field == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// LoadEnvironment reads front.json5 searching from the working directory up
// and then next to the binary. The file is optional as long as the
// environment provides every endpoint.
func LoadEnvironment() (Environment, error) {
	env, err := configutil.ReadRecursively[Environment](EnvironmentFile)
	if os.IsNotExist(err) {
		env, err = configutil.ReadFromDirs[Environment](EnvironmentFile, configutil.ExecutableDir())
	}
	if err != nil && !os.IsNotExist(err) {
		return Environment{}, err
	}
	return resolveEnvironment(env, os.LookupEnv)
}

func resolveEnvironment(env Environment, lookup func(string) (string, bool)) (Environment, error) {
	env.ApplyOverrides(lookup)
	err := env.applyDefaults()
	if err != nil {
		return Environment{}, err
	}
	missing := env.Missing()
	if len(missing) > 0 {
		slices.Sort(missing)
		return Environment{}, fmt.Errorf(
			"missing portal endpoints in %s or environment: %s",
			EnvironmentFile, strings.Join(missing, ", "),
		)
	}
	return env, nil
}

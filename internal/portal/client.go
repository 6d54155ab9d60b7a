package portal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"front-auditor/internal/apperr"
	"front-auditor/internal/config"
	"front-auditor/lib/restyutil"
	"front-auditor/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("front-auditor/portal")

const (
	report_client_login    = "client.login"
	report_client_get      = "client.get"
	report_client_download = "client.download"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// login form field names
const (
	fieldViewState = "__VIEWSTATE"
	fieldButton    = "ctl00$MainContent$LoginUser$LoginButton"
	fieldUsername  = "ctl00$MainContent$LoginUser$UserName"
	fieldPassword  = "ctl00$MainContent$LoginUser$Password"
)

// Credentials are only held for the duration of a Login call.
type Credentials struct {
	Username string
	Password string
}

// Client talks to the portal. The auth token is always read from the store
// and sent explicitly, the cookie jar only carries what the portal sets
// during a single exchange.
type Client struct {
	http  *resty.Client
	store *config.Store
	env   config.Environment
	tel   telemetry.API
}

type ClientOptions struct {
	Environment config.Environment
	Store       *config.Store
	Telemetry   telemetry.API
	// optional, receives every http exchange with credentials redacted
	Dump restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	_, err := url.Parse(opts.Environment.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("parse login url: %w", err)
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(10),
		resty.DomainCheckRedirectPolicy(redirectHosts(opts.Environment)...),
	)
	client.SetTimeout(opts.Environment.Timeout())
	if opts.Environment.Insecure() {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	telemetry.InstrumentResty(client, "front-auditor/portal/http", opts.Telemetry)
	restyutil.DumpMessages(client, opts.Dump)

	return &Client{
		http:  client,
		store: opts.Store,
		env:   opts.Environment,
		tel:   opts.Telemetry,
	}, nil
}

// redirectHosts lists the distinct hostnames of every configured portal
// endpoint. Redirects anywhere else are refused.
func redirectHosts(env config.Environment) []string {
	hosts := []string{}
	for _, raw := range []string{
		env.LoginURL,
		env.ReportURL,
		env.ReportIndividualURL,
		env.AuditListURL,
		env.AuditDownloadURL,
		env.CobroGenerateURL,
		env.CobroDownloadURL,
		env.PitURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue
		}
		if !slices.Contains(hosts, u.Hostname()) {
			hosts = append(hosts, u.Hostname())
		}
	}
	slices.Sort(hosts)
	return hosts
}

func transportError(op string, err error) error {
	return apperr.New(apperr.KindTransport, op, err)
}

func checkStatus(op string, res *resty.Response) error {
	switch {
	case res.StatusCode() == http.StatusNotFound:
		return apperr.New(apperr.KindReportNotFound, op, fmt.Errorf("status %s", res.Status()))
	case res.StatusCode() >= 400:
		return transportError(op, fmt.Errorf("status %s", res.Status()))
	}
	return nil
}

// finalRequestHeader is the raw header of the last request sent, after
// following redirects.
func finalRequestHeader(res *resty.Response) string {
	if res == nil || res.RawResponse == nil {
		return ""
	}
	return RawRequestHeader(res.RawResponse.Request)
}

// Login posts the login form. The portal answers a good login with a
// redirect whose follow-up request carries the auth cookie, so the token is
// read from the final outgoing request header.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	// a cookie left over from an earlier login would look like a success
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", err
	}
	c.http.SetCookieJar(jar)

	static := c.store.Get().StaticFormFields
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			fieldViewState: static[config.KeyViewState],
			fieldButton:    static[config.KeyButtonContext],
			fieldUsername:  creds.Username,
			fieldPassword:  creds.Password,
		}).
		Post(c.env.LoginURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		c.tel.ReportBroken(report_client_login, err)
		return "", transportError("login", err)
	}
	err = checkStatus("login", res)
	if err != nil {
		span.SetStatus(codes.Error, "bad status")
		return "", err
	}

	token, ok := ParseAuthCookie(finalRequestHeader(res))
	if !ok {
		span.SetStatus(codes.Error, "no auth cookie")
		return "", apperr.New(apperr.KindInvalidCredentials, "login", nil)
	}

	err = c.store.SetAuth(creds.Username, token)
	if err != nil {
		span.RecordError(err)
		return "", apperr.New(apperr.KindWrite, "login", err)
	}
	return token, nil
}

func (c *Client) authRequest(ctx context.Context) *resty.Request {
	cfg := c.store.Get()
	return c.http.R().
		SetContext(ctx).
		SetHeader("Cookie", fmt.Sprintf(
			"%s=%s; ASP.NET_SessionId=%s",
			AuthCookieName, cfg.AuthToken, c.env.SessionID,
		))
}

func (c *Client) expired(res *resty.Response) bool {
	return strings.Contains(finalRequestHeader(res), c.env.LoginPath)
}

// AuthenticatedGet fetches url with the stored session. A redirect to the
// login form yields apperr.ErrSessionExpired instead of the body.
func (c *Client) AuthenticatedGet(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:AuthenticatedGet")
	defer span.End()

	res, err := c.authRequest(ctx).Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, transportError("get", err)
	}
	if c.expired(res) {
		span.SetStatus(codes.Error, "session expired")
		c.tel.ReportWarning(report_client_get, "session expired", url)
		return nil, apperr.New(apperr.KindSessionExpired, "get", nil)
	}
	err = checkStatus("get", res)
	if err != nil {
		span.SetStatus(codes.Error, "bad status")
		return nil, err
	}
	return res.Body(), nil
}

// AuthenticatedDownload streams url into <temp dir>/<destinationName> and
// returns the path once the file is complete and closed. A failed download
// leaves no file behind.
func (c *Client) AuthenticatedDownload(ctx context.Context, url, destinationName string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:AuthenticatedDownload")
	defer span.End()
	span.SetAttributes(attribute.String("destination", destinationName))

	res, err := c.authRequest(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if res != nil && res.RawBody() != nil {
		defer res.RawBody().Close()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", transportError("download", err)
	}
	if c.expired(res) {
		span.SetStatus(codes.Error, "session expired")
		c.tel.ReportWarning(report_client_download, "session expired", url)
		return "", apperr.New(apperr.KindSessionExpired, "download", nil)
	}
	err = checkStatus("download "+destinationName, res)
	if err != nil {
		span.SetStatus(codes.Error, "bad status")
		return "", err
	}

	path, err := c.writeFile(destinationName, res.RawBody())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write file")
		c.tel.ReportBroken(report_client_download, err, destinationName)
		return "", err
	}
	return path, nil
}

func (c *Client) writeFile(name string, body io.Reader) (string, error) {
	err := os.MkdirAll(c.env.TempDir, 0755)
	if err != nil {
		return "", apperr.New(apperr.KindDirectoryCreate, "download", err)
	}

	path := filepath.Join(c.env.TempDir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", apperr.New(apperr.KindWrite, "download "+name, err)
	}

	_, copyErr := io.Copy(file, body)
	closeErr := file.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(path)
		return "", apperr.New(apperr.KindWrite, "download "+name, err)
	}
	return path, nil
}

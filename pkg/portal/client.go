// Package portal is the HTTP transport to the attendance portal. It owns the
// session cookie, the CSRF token and the JSON envelope conventions; callers
// only see decoded payloads or serrors-kinded failures.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/configuration"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	CSRFHeader      = "X-CSRFToken"
	maxResponseSize = 16 << 20
)

type Options struct {
	BaseURL         string
	SessionCookie   string
	SessionID       string
	CSRFToken       string
	CSRFCookie      string
	CSRFPage        string
	RequestIDHeader string
	Timeout         time.Duration
	// RateLimit is a formatted rate such as "20-S"; empty means unlimited.
	RateLimit string
	// Transport replaces the default pooled transport; tests pass httptest's.
	Transport http.RoundTripper
	Logger    *logrus.Logger
}

func OptionsFromConfig(conf *configuration.Configuration) Options {
	return Options{
		BaseURL:         conf.Portal.BaseURL,
		SessionCookie:   conf.Portal.SessionCookie,
		SessionID:       conf.Portal.SessionID,
		CSRFToken:       conf.Portal.CSRFToken,
		CSRFCookie:      conf.Portal.CSRFCookie,
		CSRFPage:        conf.Portal.CSRFPage,
		RequestIDHeader: conf.RequestIDHeader,
		Timeout:         conf.Portal.Timeout,
		RateLimit:       conf.Portal.RateLimit,
		Logger:          conf.Logger(),
	}
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        *cookiejar.Jar
	opts       Options
	log        *logrus.Logger
	throttle   *throttle

	mu   sync.Mutex
	csrf string
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, serrors.Validation("base_url", "INVALID_BASE_URL", fmt.Sprintf("invalid base url: %q", raw), "Validation.BaseURL")
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if opts.SessionCookie == "" {
		opts.SessionCookie = "sessionid"
	}
	if opts.CSRFCookie == "" {
		opts.CSRFCookie = "csrftoken"
	}
	if opts.CSRFPage == "" {
		opts.CSRFPage = "/"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.SessionID != "" {
		jar.SetCookies(u, []*http.Cookie{{Name: opts.SessionCookie, Value: opts.SessionID, Path: "/"}})
	}
	th, err := newThrottle(opts.RateLimit, u.Host)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	base := opts.Transport
	if base == nil {
		base = newTransport()
	}
	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Jar:       jar,
			Transport: &instrumentedTransport{next: base},
		},
		jar:      jar,
		opts:     opts,
		log:      logger,
		throttle: th,
		csrf:     strings.TrimSpace(opts.CSRFToken),
	}, nil
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// DoJSON sends reqBody as JSON (when non-nil) and decodes the response into out
// (when non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return serrors.Transport("json marshal request", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), body)
	if err != nil {
		return serrors.Transport("build request", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(ctx, req, out)
}

// DoMultipart posts form as multipart/form-data.
func (c *Client) DoMultipart(ctx context.Context, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return serrors.Transport("encode multipart form", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, nil), body)
	if err != nil {
		return serrors.Transport("build request", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(ctx, req, out)
}

func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if err := c.throttle.wait(ctx); err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if c.opts.RequestIDHeader != "" {
		req.Header.Set(c.opts.RequestIDHeader, requestID)
	}
	if isStateChanging(req.Method) {
		token, err := c.CSRFToken(ctx)
		if err != nil {
			c.log.WithError(err).Warn("portal: csrf token unavailable, sending without it")
		}
		if token != "" {
			req.Header.Set(CSRFHeader, token)
		}
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     req.Method,
		"endpoint":   endpointLabel(req.Method, req.URL.Path),
		"request_id": requestID,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Error("portal: request failed")
		return serrors.Transport(req.Method+" "+req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		entry.WithError(err).Error("portal: read response failed")
		return serrors.Transport("read response", err)
	}
	entry = entry.WithField("status", resp.StatusCode)

	if resp.StatusCode == http.StatusForbidden && isStateChanging(req.Method) {
		// A stale token is refused with 403; resolve a fresh one next time.
		c.ResetCSRF()
	}
	env := httpapi.DecodeEnvelope(respBody)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := env.Text(); msg != "" {
			entry.WithField("message", msg).Warn("portal: request rejected")
			return serrors.Business(resp.StatusCode, msg)
		}
		entry.Error("portal: unexpected status")
		return serrors.Transport(
			req.Method+" "+req.URL.Path,
			fmt.Errorf("http status=%d body=%s", resp.StatusCode, truncate(strings.TrimSpace(string(respBody)), 256)),
		)
	}
	if env.Failed() {
		entry.WithField("message", env.Text()).Warn("portal: business failure")
		return serrors.Business(resp.StatusCode, env.Text())
	}
	entry.Debug("portal: ok")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		entry.WithError(err).Error("portal: decode response failed")
		return serrors.Transport("json unmarshal response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// JSONDoer is what module repositories depend on; *Client satisfies it.
type JSONDoer interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// MultipartDoer uploads multipart forms.
type MultipartDoer interface {
	DoMultipart(ctx context.Context, path string, form *Form, out any) error
}

var (
	_ JSONDoer      = (*Client)(nil)
	_ MultipartDoer = (*Client)(nil)
)

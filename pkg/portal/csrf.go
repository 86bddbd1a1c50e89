package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

// CSRFToken returns the cached token or resolves one: first from the CSRF
// cookie, then from the hidden csrfmiddlewaretoken field of the configured
// page (which also sets the cookie on most deployments).
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.csrf != "" {
		return c.csrf, nil
	}
	if token := c.csrfFromJar(); token != "" {
		c.csrf = token
		return token, nil
	}

	token, err := c.scrapeCSRF(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		token = c.csrfFromJar()
	}
	if token == "" {
		return "", fmt.Errorf("csrf token not found on %s", c.opts.CSRFPage)
	}
	c.csrf = token
	return token, nil
}

// ResetCSRF drops the cached token so the next state-changing call resolves
// it again.
func (c *Client) ResetCSRF() {
	c.mu.Lock()
	c.csrf = ""
	c.mu.Unlock()
}

func (c *Client) csrfFromJar() string {
	for _, ck := range c.jar.Cookies(c.baseURL) {
		if ck.Name == c.opts.CSRFCookie {
			return strings.TrimSpace(ck.Value)
		}
	}
	return ""
}

func (c *Client) scrapeCSRF(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(c.opts.CSRFPage, nil), nil)
	if err != nil {
		return "", serrors.Transport("build csrf request", err)
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serrors.Transport("GET "+c.opts.CSRFPage, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", serrors.Transport("GET "+c.opts.CSRFPage, fmt.Errorf("http status=%d", resp.StatusCode))
	}
	return ExtractCSRF(io.LimitReader(resp.Body, maxResponseSize))
}

// ExtractCSRF reads the token from a rendered page: the hidden form field
// first, then a csrf-token meta tag.
func ExtractCSRF(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}
	if v, ok := doc.Find(`input[name="csrfmiddlewaretoken"]`).First().Attr("value"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if v, ok := doc.Find(`meta[name="csrf-token"]`).First().Attr("content"); ok {
		return strings.TrimSpace(v), nil
	}
	return "", nil
}

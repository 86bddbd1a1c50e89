package portal_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

func newClient(t *testing.T, srv *httptest.Server, opts portal.Options) *portal.Client {
	t.Helper()
	opts.BaseURL = srv.URL
	if opts.RequestIDHeader == "" {
		opts.RequestIDHeader = "X-Request-ID"
	}
	c, err := portal.New(opts)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := portal.New(portal.Options{BaseURL: "not a url"})
	require.Error(t, err)
	require.True(t, serrors.IsValidation(err))
}

func TestDoJSON_GetSendsSessionAndDecodes(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.HandleFunc("/absence/api/requests/", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodGet, req.Method)
		require.Equal(t, "application/json", req.Header.Get("Accept"))
		require.NotEmpty(t, req.Header.Get("X-Request-ID"))
		require.Empty(t, req.Header.Get(portal.CSRFHeader))
		ck, err := req.Cookie("sessionid")
		require.NoError(t, err)
		require.Equal(t, "sess-1", ck.Value)
		require.Equal(t, "pending", req.URL.Query().Get("status"))
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "requests": []map[string]any{{"id": 7}}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{SessionID: "sess-1"})
	var out struct {
		Requests []struct {
			ID int64 `json:"id"`
		} `json:"requests"`
	}
	err := c.DoJSON(context.Background(), http.MethodGet, "/absence/api/requests/", map[string][]string{"status": {"pending"}}, nil, &out)
	require.NoError(t, err)
	require.Len(t, out.Requests, 1)
	require.Equal(t, int64(7), out.Requests[0].ID)
}

func TestDoJSON_PostUsesConfiguredCSRFToken(t *testing.T) {
	t.Parallel()

	var got map[string]any
	r := mux.NewRouter()
	r.HandleFunc("/absence/api/requests/1/action/", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "tok-1", req.Header.Get(portal.CSRFHeader))
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{CSRFToken: "tok-1"})
	err := c.DoJSON(context.Background(), http.MethodPost, "/absence/api/requests/1/action/", nil, map[string]string{"action": "approve"}, nil)
	require.NoError(t, err)
	require.Equal(t, "approve", got["action"])
}

func TestCSRFToken_ScrapedFromPageOnce(t *testing.T) {
	t.Parallel()

	var pageHits int32
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&pageHits, 1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, `<html><body><form><input type="hidden" name="csrfmiddlewaretoken" value="scraped-1"></form></body></html>`)
	})
	r.HandleFunc("/notifications/api/read-all/", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "scraped-1", req.Header.Get(portal.CSRFHeader))
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{})
	for i := 0; i < 2; i++ {
		require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "/notifications/api/read-all/", nil, nil, nil))
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&pageHits))
}

func TestCSRFToken_FromCookie(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "cookie-1", Path: "/"})
		_, _ = io.WriteString(w, "<html></html>")
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{})
	token, err := c.CSRFToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cookie-1", token)
}

func TestCSRFToken_RefusedTokenIsResolvedAgain(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []string
	)
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html><body><input type="hidden" name="csrfmiddlewaretoken" value="fresh-1"></body></html>`)
	})
	r.HandleFunc("/notifications/api/read-all/", func(w http.ResponseWriter, req *http.Request) {
		token := req.Header.Get(portal.CSRFHeader)
		mu.Lock()
		seen = append(seen, token)
		mu.Unlock()
		if token != "fresh-1" {
			_ = httpapi.WriteJSON(w, http.StatusForbidden, map[string]any{"detail": "CSRF Failed: CSRF token incorrect."})
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{CSRFToken: "stale-1"})
	err := c.DoJSON(context.Background(), http.MethodPost, "/notifications/api/read-all/", nil, nil, nil)
	require.Error(t, err)
	require.True(t, serrors.IsBusiness(err))

	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "/notifications/api/read-all/", nil, nil, nil))
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"stale-1", "fresh-1"}, seen)
}

func TestExtractCSRF_MetaFallback(t *testing.T) {
	t.Parallel()

	token, err := portal.ExtractCSRF(strings.NewReader(`<html><head><meta name="csrf-token" content=" m-1 "></head></html>`))
	require.NoError(t, err)
	require.Equal(t, "m-1", token)

	token, err = portal.ExtractCSRF(strings.NewReader(`<html></html>`))
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestDoJSON_ErrorKinds(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.HandleFunc("/failed", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteFailure(w, http.StatusOK, "Đơn đã được xử lý")
	})
	r.HandleFunc("/forbidden", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteJSON(w, http.StatusForbidden, map[string]string{"detail": "CSRF Failed"})
	})
	r.HandleFunc("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>Server Error</html>")
	})
	r.HandleFunc("/garbage", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "{not json")
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{CSRFToken: "t"})
	ctx := context.Background()

	err := c.DoJSON(ctx, http.MethodPost, "/failed", nil, map[string]string{}, nil)
	require.True(t, serrors.IsBusiness(err))
	require.Equal(t, "Đơn đã được xử lý", err.Error())

	err = c.DoJSON(ctx, http.MethodGet, "/forbidden", nil, nil, nil)
	require.True(t, serrors.IsBusiness(err))
	be, ok := serrors.As(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, be.Status)
	require.Equal(t, "CSRF Failed", be.Message)

	err = c.DoJSON(ctx, http.MethodGet, "/boom", nil, nil, nil)
	require.True(t, serrors.IsTransport(err))

	var out map[string]any
	err = c.DoJSON(ctx, http.MethodGet, "/garbage", nil, nil, &out)
	require.True(t, serrors.IsTransport(err))
}

func TestDoJSON_NetworkFailureIsTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	c := newClient(t, srv, portal.Options{})
	srv.Close()

	err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	require.True(t, serrors.IsTransport(err))
}

func TestDoMultipart_SendsFieldsAndFile(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.HandleFunc("/checkin/api/submit/", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "tok", req.Header.Get(portal.CSRFHeader))
		require.NoError(t, req.ParseMultipartForm(1<<20))
		require.Equal(t, "21.0285", req.FormValue("latitude"))
		f, hdr, err := req.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "checkin.jpg", hdr.Filename)
		require.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		data, _ := io.ReadAll(f)
		require.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data)
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "checkin_id": 9})
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{CSRFToken: "tok"})
	form := portal.NewForm().
		Field("latitude", "21.0285").
		File("photo", "checkin.jpg", "image/jpeg", []byte{0xFF, 0xD8, 0xFF})
	var out struct {
		CheckinID int64 `json:"checkin_id"`
	}
	require.NoError(t, c.DoMultipart(context.Background(), "/checkin/api/submit/", form, &out))
	require.Equal(t, int64(9), out.CheckinID)
}

func TestMetrics_EndpointCollapsesIDs(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/notifications/api/{id}/read/", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{CSRFToken: "t"})
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "/notifications/api/123/read/", nil, nil, nil))

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() != "chamcong_portal_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["endpoint"] == "POST /notifications/api/:id/read/" && labels["result"] == "2xx" {
				found = true
			}
		}
	}
	require.True(t, found)
}

func TestRateLimit_WaitsForSlot(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv, portal.Options{RateLimit: "1-M"})
	require.NoError(t, c.DoJSON(context.Background(), http.MethodGet, "/ping/", nil, nil, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.DoJSON(ctx, http.MethodGet, "/ping/", nil, nil, nil)
	require.Error(t, err)
	require.True(t, serrors.IsTransport(err))
	require.Equal(t, int32(1), hits.Load())

	_, err = portal.New(portal.Options{BaseURL: srv.URL, RateLimit: "fast"})
	require.True(t, serrors.IsValidation(err))
}

// Package checkintest serves the check-in endpoints from memory over
// httptest and records every submission it receives.
package checkintest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
)

// Received is one multipart submission as the server saw it.
type Received struct {
	Fields      map[string]string
	Filename    string
	ContentType string
	Photo       []byte
	CSRF        string
}

type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	received []Received
	checkins []map[string]any
	history  []map[string]any
	failWith string
}

func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{}
	r := mux.NewRouter()
	r.HandleFunc("/checkin/api/submit/", b.submit).Methods(http.MethodPost)
	r.HandleFunc("/checkin/api/checkins/", b.list(func() []map[string]any { return b.checkins })).Methods(http.MethodGet)
	r.HandleFunc("/checkin/api/history/", b.list(func() []map[string]any { return b.history })).Methods(http.MethodGet)
	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) Client(t *testing.T) *portal.Client {
	t.Helper()
	c, err := portal.New(portal.Options{BaseURL: b.Server.URL, CSRFToken: "test-csrf", SessionID: "test-session"})
	if err != nil {
		t.Fatalf("portal client: %v", err)
	}
	return c
}

// FailWith makes the next submissions answer {success:false, error: msg}.
func (b *Backend) FailWith(msg string) {
	b.mu.Lock()
	b.failWith = msg
	b.mu.Unlock()
}

// SetCheckins sets the list rows. The list endpoint answers with area_*
// names, the history endpoint with location_* names.
func (b *Backend) SetCheckins(rows ...map[string]any) {
	b.mu.Lock()
	b.checkins = rows
	b.mu.Unlock()
}

func (b *Backend) SetHistory(rows ...map[string]any) {
	b.mu.Lock()
	b.history = rows
	b.mu.Unlock()
}

func (b *Backend) Received() []Received {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Received, len(b.received))
	copy(out, b.received)
	return out
}

func (b *Backend) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	rec := Received{Fields: map[string]string{}, CSRF: r.Header.Get(portal.CSRFHeader)}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			rec.Fields[k] = v[0]
		}
	}
	if fh := r.MultipartForm.File["photo"]; len(fh) > 0 {
		rec.Filename = fh[0].Filename
		rec.ContentType = fh[0].Header.Get("Content-Type")
		if f, err := fh[0].Open(); err == nil {
			rec.Photo, _ = io.ReadAll(f)
			_ = f.Close()
		}
	}

	b.mu.Lock()
	b.received = append(b.received, rec)
	fail := b.failWith
	n := len(b.received)
	b.mu.Unlock()

	if fail != "" {
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": false, "error": fail})
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Chấm công thành công lúc 08:01",
		"checkin": map[string]any{"id": n, "checkin_type": rec.Fields["checkin_type"]},
	})
}

func (b *Backend) list(rows func() []map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		data := rows()
		b.mu.Unlock()
		if data == nil {
			data = []map[string]any{}
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "checkins": data, "count": len(data)})
	}
}

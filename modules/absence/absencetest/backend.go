// Package absencetest is an in-memory portal for the absence endpoints,
// served over httptest.
package absencetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
)

// Mode selects how the approve endpoint answers.
type Mode int

const (
	ModeOK Mode = iota
	ModeBusinessFailure
	ModeServerError
)

type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	requests  map[int64]absencerequest.Request
	order     []int64
	workflows map[int64]absencerequest.Workflow
	history   map[int64][]absencerequest.HistoryEntry
	commands  []absencerequest.Command
	mode      Mode
	message   string
	gets      int
}

func New(t *testing.T, requests ...absencerequest.Request) *Backend {
	t.Helper()
	b := &Backend{
		requests:  map[int64]absencerequest.Request{},
		workflows: map[int64]absencerequest.Workflow{},
		history:   map[int64][]absencerequest.HistoryEntry{},
	}
	for _, r := range requests {
		b.requests[r.ID] = r
		b.order = append(b.order, r.ID)
	}

	r := mux.NewRouter()
	r.HandleFunc("/absence/api/requests/", b.list).Methods(http.MethodGet)
	r.HandleFunc("/absence/api/requests/{id:[0-9]+}/", b.get).Methods(http.MethodGet)
	r.HandleFunc("/absence/api/approve/{id:[0-9]+}/", b.approve).Methods(http.MethodPost)
	r.HandleFunc("/absence/api/workflow/{id:[0-9]+}/", b.workflow).Methods(http.MethodGet)
	r.HandleFunc("/absence/api/history/{id:[0-9]+}/", b.historyFor).Methods(http.MethodGet)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// Client returns a portal client for the backend with a preset CSRF token.
func (b *Backend) Client(t *testing.T) *portal.Client {
	t.Helper()
	c, err := portal.New(portal.Options{BaseURL: b.Server.URL, CSRFToken: "test-csrf", SessionID: "test-session"})
	if err != nil {
		t.Fatalf("portal client: %v", err)
	}
	return c
}

func (b *Backend) SetMode(m Mode, message string) {
	b.mu.Lock()
	b.mode = m
	b.message = message
	b.mu.Unlock()
}

func (b *Backend) SetWorkflow(id int64, w absencerequest.Workflow) {
	b.mu.Lock()
	b.workflows[id] = w
	b.mu.Unlock()
}

func (b *Backend) SetHistory(id int64, h []absencerequest.HistoryEntry) {
	b.mu.Lock()
	b.history[id] = h
	b.mu.Unlock()
}

// Commands returns every approve body received, in order.
func (b *Backend) Commands() []absencerequest.Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]absencerequest.Command, len(b.commands))
	copy(out, b.commands)
	return out
}

// Gets counts single-request fetches.
func (b *Backend) Gets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gets
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (b *Backend) list(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	out := make([]absencerequest.Request, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.requests[id])
	}
	b.mu.Unlock()
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "requests": out})
}

func (b *Backend) get(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.gets++
	req, ok := b.requests[pathID(r)]
	b.mu.Unlock()
	if !ok {
		_ = httpapi.WriteJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Không tìm thấy đơn"})
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "request": req})
}

func (b *Backend) approve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(portal.CSRFHeader) == "" {
		_ = httpapi.WriteJSON(w, http.StatusForbidden, map[string]string{"detail": "CSRF Failed"})
		return
	}
	var cmd absencerequest.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "invalid body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands = append(b.commands, cmd)
	switch b.mode {
	case ModeBusinessFailure:
		_ = httpapi.WriteFailure(w, http.StatusOK, b.message)
		return
	case ModeServerError:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<h1>Server Error (500)</h1>"))
		return
	}

	id := pathID(r)
	req := b.requests[id]
	switch cmd.Action {
	case absencerequest.ActionApprove:
		req.Status = absencerequest.StatusApproved
		req.ApprovalLevel = absencerequest.LevelFinalApproved
	case absencerequest.ActionReject:
		req.Status = absencerequest.StatusRejected
	case absencerequest.ActionCancel:
		req.Status = absencerequest.StatusCancelled
	case absencerequest.ActionDelegate:
		req.CurrentApproverID = cmd.DelegateTo
		req.CanApprove = false
	}
	b.requests[id] = req
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": b.message})
}

func (b *Backend) workflow(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	wf := b.workflows[pathID(r)]
	b.mu.Unlock()
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "workflow": wf})
}

func (b *Backend) historyFor(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	h := b.history[pathID(r)]
	b.mu.Unlock()
	if h == nil {
		h = []absencerequest.HistoryEntry{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "history": h})
}

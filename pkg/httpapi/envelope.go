package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Envelope is the common part of every portal JSON response. Success is a
// pointer because CRUD list endpoints ({results, count}) omit it.
type Envelope struct {
	Success *bool             `json:"success,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Detail  string            `json:"detail,omitempty"`
	Code    string            `json:"code,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Failed reports whether the portal explicitly rejected the call.
func (e *Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// Text returns the user-facing message, whichever field the endpoint used.
func (e *Envelope) Text() string {
	for _, s := range []string{e.Message, e.Error, e.Detail} {
		if v := strings.TrimSpace(s); v != "" {
			return v
		}
	}
	return ""
}

// DecodeEnvelope reads the envelope fields out of a response body. Bodies
// that are not JSON objects (bare arrays, empty bodies) yield a zero Envelope.
func DecodeEnvelope(body []byte) Envelope {
	var env Envelope
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return env
	}
	_ = json.Unmarshal(body, &env)
	return env
}

func Bool(v bool) *bool { return &v }

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

// WriteFailure writes the {success:false, message} shape the portal uses for
// business failures.
func WriteFailure(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, &Envelope{
		Success: Bool(false),
		Message: message,
	})
}

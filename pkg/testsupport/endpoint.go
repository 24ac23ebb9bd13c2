package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-orderform/pkg/model"
)

// Reply scripts one response of an OrderEndpoint. An empty Body sends no
// payload at all.
type Reply struct {
	Status int
	Body   string
}

// OrderEndpoint is an httptest server standing in for the remote order
// endpoint. It records every decoded request.
type OrderEndpoint struct {
	*httptest.Server

	mu       sync.Mutex
	reply    Reply
	requests []model.OrderRequest
	raw      []string
}

// NewOrderEndpoint starts an endpoint answering every request with reply.
// The server is closed through t.Cleanup.
func NewOrderEndpoint(t *testing.T, reply Reply) *OrderEndpoint {
	t.Helper()

	endpoint := &OrderEndpoint{reply: reply}
	endpoint.Server = httptest.NewServer(http.HandlerFunc(endpoint.serve))
	t.Cleanup(endpoint.Close)
	return endpoint
}

// URL returns the full order URL.
func (e *OrderEndpoint) URL() string {
	return e.Server.URL + "/api/order"
}

// SetReply changes the scripted response.
func (e *OrderEndpoint) SetReply(reply Reply) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reply = reply
}

// Requests returns the decoded requests received so far.
func (e *OrderEndpoint) Requests() []model.OrderRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.OrderRequest(nil), e.requests...)
}

// RawBodies returns the raw request bodies received so far.
func (e *OrderEndpoint) RawBodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.raw...)
}

func (e *OrderEndpoint) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var req model.OrderRequest
	_ = json.Unmarshal(body, &req)

	e.mu.Lock()
	e.requests = append(e.requests, req)
	e.raw = append(e.raw, string(body))
	reply := e.reply
	e.mu.Unlock()

	status := reply.Status
	if status == 0 {
		status = http.StatusCreated
	}
	if reply.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if reply.Body != "" {
		_, _ = io.WriteString(w, reply.Body)
	}
}

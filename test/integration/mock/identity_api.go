package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// IdentityUser is a user served by the identity API mock.
type IdentityUser struct {
	ID        string
	Email     string
	FirstName string
}

// IdentityApiMock serves GET /users/{id} the way the identity provider's
// backend API does and records every request it receives.
type IdentityApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	users            map[string]IdentityUser
	statusOverride   map[string]int
	headersReceived  map[string][]map[string]string
	requestsReceived map[string]int
}

func NewIdentityApiMock() *IdentityApiMock {
	return &IdentityApiMock{
		users:            map[string]IdentityUser{},
		statusOverride:   map[string]int{},
		headersReceived:  map[string][]map[string]string{},
		requestsReceived: map[string]int{},
	}
}

func (a *IdentityApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *IdentityApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *IdentityApiMock) GetUrl() string {
	return a.server.URL
}

func (a *IdentityApiMock) handle(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := r.Method + r.URL.Path
	a.requestsReceived[key]++

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}
	a.headersReceived[key] = append(a.headersReceived[key], headers)

	id, ok := strings.CutPrefix(r.URL.Path, "/users/")
	if r.Method != http.MethodGet || !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if status, overridden := a.statusOverride[id]; overridden {
		w.WriteHeader(status)
		return
	}

	user, exists := a.users[id]
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[{"code":"resource_not_found"}]}`))
		return
	}

	emailID := "idn_" + user.ID
	body := map[string]any{
		"id":                       user.ID,
		"primary_email_address_id": emailID,
		"email_addresses": []map[string]string{
			{"id": emailID, "email_address": user.Email},
		},
	}
	if user.FirstName != "" {
		body["first_name"] = user.FirstName
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// AddUser registers a user profile.
func (a *IdentityApiMock) AddUser(user IdentityUser) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[user.ID] = user
}

// SetStatus makes lookups of id answer with status and no body.
func (a *IdentityApiMock) SetStatus(id string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statusOverride[id] = status
}

// GetRequestCount returns how many requests hit method and path.
func (a *IdentityApiMock) GetRequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requestsReceived[method+path]
}

// GetRequestHeaders returns the headers of the index-th request to method and path.
func (a *IdentityApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	received := a.headersReceived[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// Clear forgets users, overrides and recorded requests.
func (a *IdentityApiMock) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.users = map[string]IdentityUser{}
	a.statusOverride = map[string]int{}
	a.headersReceived = map[string][]map[string]string{}
	a.requestsReceived = map[string]int{}
}

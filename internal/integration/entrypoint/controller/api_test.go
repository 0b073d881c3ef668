package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spendly/backend/config"
	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/infra/db"
	"github.com/spendly/backend/internal/infra/dependency"
	"github.com/spendly/backend/internal/integration/email"
	"github.com/spendly/backend/internal/integration/persistence"
)

const (
	alice = "user_alice"
	bob   = "user_bob"
)

// fakeIdentity accepts a token equal to a known user ID.
type fakeIdentity struct {
	users map[string]*adapter.IdentityUser
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token == "expired" {
		return nil, domainerror.ErrTokenExpired
	}
	if _, ok := f.users[token]; !ok {
		return nil, domainerror.ErrTokenInvalid
	}
	return &adapter.TokenClaims{Subject: token}, nil
}

func (f *fakeIdentity) GetUser(_ context.Context, subject string) (*adapter.IdentityUser, error) {
	user, ok := f.users[subject]
	if !ok {
		return nil, domainerror.ErrIdentityUserNotFound
	}
	return user, nil
}

// fakeSuggestions picks the offered category named "Food".
type fakeSuggestions struct {
	available bool
}

func (f *fakeSuggestions) IsAvailable() bool { return f.available }

func (f *fakeSuggestions) SuggestCategory(_ context.Context, req *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	for _, c := range req.Categories {
		if strings.EqualFold(c.Name, "Food") {
			return &adapter.CategorySuggestion{CategoryID: c.ID, Confidence: 0.9, Reasoning: "Groceries are food"}, nil
		}
	}
	return nil, errors.New("no matching category")
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type testAPI struct {
	t           *testing.T
	engine      *gin.Engine
	db          *gorm.DB
	injector    *dependency.Injector
	sender      *email.MockEmailSender
	suggestions *fakeSuggestions
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite"},
		Identity: config.IdentityConfig{UserCacheTTL: time.Minute},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Email:    config.EmailConfig{AppBaseURL: "http://localhost:3000"},
		RateLimit: config.RateLimitConfig{
			SuggestionLimit:  2,
			SuggestionWindow: time.Minute,
		},
	}

	database, err := db.NewSQLiteConnection(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(persistence.Models()...))
	t.Cleanup(func() { _ = database.Close() })

	aliceName := "Alice"
	identity := &fakeIdentity{users: map[string]*adapter.IdentityUser{
		alice: {ID: alice, Email: "alice@example.com", FirstName: &aliceName},
		bob:   {ID: bob, Email: "bob@example.com"},
	}}
	sender := email.NewMockEmailSender()
	suggestions := &fakeSuggestions{available: true}

	injector, err := dependency.NewInjector(cfg, database, dependency.Options{
		Identity:    identity,
		Suggestions: suggestions,
		EmailSender: sender,
		Clock:       fixedClock{now: time.Now().UTC().Add(time.Minute)},
	})
	require.NoError(t, err)

	return &testAPI{
		t:           t,
		engine:      injector.Router.Setup(cfg.Server.Environment),
		db:          database.DB(),
		injector:    injector,
		sender:      sender,
		suggestions: suggestions,
	}
}

// do sends a request as user. An empty user sends no Authorization header.
// body may be a raw JSON string or a value to marshal.
func (a *testAPI) do(method, path, user string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	header := ""
	if user != "" {
		header = "Bearer " + user
	}
	return a.doWithHeader(method, path, header, body)
}

func (a *testAPI) doWithHeader(method, path, authorization string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec.Code, decoded
}

// create posts body and returns the created resource's id.
func (a *testAPI) create(path, user, resource string, body interface{}) string {
	a.t.Helper()

	status, resp := a.do(http.MethodPost, path, user, body)
	require.Equal(a.t, http.StatusCreated, status, resp)
	return object(a.t, resp, resource)["id"].(string)
}

func (a *testAPI) seedSystemCategory(name string) *entity.Category {
	a.t.Helper()

	cat := entity.NewCategory(name, "tag", "#123456", "")
	cat.Owner = entity.SystemOwner()
	cat.UpdatedByID = "system"
	require.NoError(a.t, persistence.NewCategoryRepository(a.db).Create(context.Background(), cat))
	return cat
}

func (a *testAPI) count(table string) int64 {
	a.t.Helper()

	var n int64
	require.NoError(a.t, a.db.Table(table).Count(&n).Error)
	return n
}

func object(t *testing.T, resp map[string]interface{}, key string) map[string]interface{} {
	t.Helper()

	obj, ok := resp[key].(map[string]interface{})
	require.True(t, ok, "response has no %q object: %v", key, resp)
	return obj
}

func list(t *testing.T, resp map[string]interface{}, key string) []interface{} {
	t.Helper()

	items, ok := resp[key].([]interface{})
	require.True(t, ok, "response has no %q list: %v", key, resp)
	return items
}

func categoryBody(name, color string) map[string]interface{} {
	return map[string]interface{}{"name": name, "icon": "tag", "color": color}
}

func spendBody(categoryID string, amount interface{}) map[string]interface{} {
	return map[string]interface{}{
		"amount":        amount,
		"description":   "Groceries",
		"categoryId":    categoryID,
		"paymentMethod": "card",
		"date":          "2024-03-01",
	}
}

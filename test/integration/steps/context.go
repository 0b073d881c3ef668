// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/spendly/backend/config"
	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/infra/dependency"
	"github.com/spendly/backend/internal/integration/email"
	"github.com/spendly/backend/internal/integration/persistence/model"
	"github.com/spendly/backend/test/integration/mock"
)

const testIdentitySecret = "sk_test_identity_secret_for_integration"

// testServer is shared by every scenario; state is cleared between them.
type testServer struct {
	server      *httptest.Server
	injector    *dependency.Injector
	db          *mock.Db
	identityApi *mock.IdentityApiMock
	redis       *redis.Client
	sender      *email.MockEmailSender
	suggestions *stubSuggestions
	timeMock    *mock.Time
}

var (
	serverInit sync.Once
	shared     *testServer
	serverErr  error
)

type testContext struct {
	*testServer

	client      *http.Client
	headers     map[string]string
	accessToken string
	response    *response
	saved       map[string]string
}

type response struct {
	status int
	body   any
}

// stubSuggestions picks the offered category whose name appears in the
// description, falling back to the first one with low confidence.
type stubSuggestions struct {
	mu        sync.Mutex
	available bool
}

func (s *stubSuggestions) setAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

func (s *stubSuggestions) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *stubSuggestions) SuggestCategory(_ context.Context, req *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	if len(req.Categories) == 0 {
		return nil, errors.New("no categories offered")
	}
	description := strings.ToLower(req.Description)
	for _, c := range req.Categories {
		if strings.Contains(description, strings.ToLower(c.Name)) {
			return &adapter.CategorySuggestion{CategoryID: c.ID, Confidence: 0.95, Reasoning: "Name matches the description"}, nil
		}
	}
	return &adapter.CategorySuggestion{CategoryID: req.Categories[0].ID, Confidence: 0.4, Reasoning: "Best guess"}, nil
}

// testTables lists the tables children first.
var testTables = []string{"email_queue", "goal_contributions", "goals", "spends", "categories"}

var testModels = map[string]any{
	"categories":         &model.CategoryModel{},
	"spends":             &model.SpendModel{},
	"goals":              &model.GoalModel{},
	"goal_contributions": &model.ContributionModel{},
	"email_queue":        &model.EmailQueueModel{},
}

func startServer() (*testServer, error) {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		identityApi := mock.NewIdentityApiMock()
		identityApi.Start()

		database := mock.NewDb(testModels, testTables)
		rdb := mock.NewRedis()
		timeMock := mock.NewTime()
		sender := email.NewMockEmailSender()
		suggestions := &stubSuggestions{available: true}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Database.Driver = "sqlite"
		cfg.Identity = config.IdentityConfig{
			SecretKey:    testIdentitySecret,
			APIURL:       identityApi.GetUrl(),
			HTTPTimeout:  2 * time.Second,
			UserCacheTTL: time.Minute,
		}
		cfg.Email.AppBaseURL = "http://localhost:3000"
		cfg.RateLimit = config.RateLimitConfig{SuggestionLimit: 3, SuggestionWindow: time.Minute}

		injector, err := dependency.NewInjector(cfg, database.Database, dependency.Options{
			Redis:       rdb,
			Suggestions: suggestions,
			EmailSender: sender,
			Clock:       timeMock,
		})
		if err != nil {
			serverErr = err
			return
		}

		shared = &testServer{
			server:      httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			injector:    injector,
			db:          database,
			identityApi: identityApi,
			redis:       rdb,
			sender:      sender,
			suggestions: suggestions,
			timeMock:    timeMock,
		}
	})
	return shared, serverErr
}

// InitializeTestSuite closes shared resources once all scenarios ran.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
			shared.identityApi.Close()
			_ = shared.db.Database.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Identity steps
	ctx.Given(`^a user "([^"]*)" exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user "([^"]*)" named "([^"]*)" exists with email "([^"]*)"$`, test.aUserNamedExistsWithEmail)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^my session token for "([^"]*)" has expired$`, test.mySessionTokenHasExpired)
	ctx.Given(`^the identity provider answers (\d+) for "([^"]*)"$`, test.theIdentityProviderAnswersFor)

	// Data setup steps
	ctx.Given(`^a system category "([^"]*)" exists$`, test.aSystemCategoryExists)
	ctx.Given(`^the user "([^"]*)" has a category "([^"]*)"$`, test.theUserHasACategory)
	ctx.Given(`^the AI service is unavailable$`, test.theAIServiceIsUnavailable)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Side effect assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^(\d+) emails? should have been sent to "([^"]*)"$`, test.emailsShouldHaveBeenSentTo)
	ctx.Then(`^the identity provider should have received (\d+) requests? for "([^"]*)"$`, test.theIdentityProviderShouldHaveReceivedRequestsFor)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.saved = make(map[string]string)

	server, err := startServer()
	if err != nil {
		return err
	}
	t.testServer = server

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	t.identityApi.Clear()
	t.sender.Reset()
	t.suggestions.setAvailable(true)
	t.injector.RateLimiter.Reset()
	t.timeMock.SetCurrentTime(time.Now().UTC())
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("health check failed")
	}
	return nil
}

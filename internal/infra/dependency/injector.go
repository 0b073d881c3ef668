// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/spendly/backend/config"
	"github.com/spendly/backend/internal/application/adapter"
	"github.com/spendly/backend/internal/application/usecase/auth"
	"github.com/spendly/backend/internal/application/usecase/category"
	"github.com/spendly/backend/internal/application/usecase/goal"
	"github.com/spendly/backend/internal/application/usecase/spend"
	"github.com/spendly/backend/internal/infra/db"
	"github.com/spendly/backend/internal/infra/server/router"
	"github.com/spendly/backend/internal/integration/adapters"
	"github.com/spendly/backend/internal/integration/email"
	"github.com/spendly/backend/internal/integration/email/templates"
	"github.com/spendly/backend/internal/integration/entrypoint/controller"
	"github.com/spendly/backend/internal/integration/entrypoint/middleware"
	"github.com/spendly/backend/internal/integration/persistence"
)

// Options overrides collaborators that are otherwise built from the config.
type Options struct {
	// Redis enables the identity user cache when non-nil.
	Redis redis.Cmdable
	// Identity replaces the identity provider client.
	Identity adapter.IdentityProvider
	// Suggestions replaces the Gemini category suggestion service.
	Suggestions adapter.CategorySuggestionService
	// EmailSender replaces the Resend client.
	EmailSender adapter.EmailSender
	Clock       adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Database    *db.Database
	Router      *router.Router
	EmailWorker *email.Worker // nil when no email sender is configured
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, opts Options) (*Injector, error) {
	gormDB := database.DB()

	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	spendRepo := persistence.NewSpendRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Create adapters/services
	identity := opts.Identity
	if identity == nil {
		identity = adapters.NewIdentityClient(adapters.IdentityClientConfig{
			SecretKey: cfg.Identity.SecretKey,
			APIURL:    cfg.Identity.APIURL,
			Issuer:    cfg.Identity.Issuer,
			Timeout:   cfg.Identity.HTTPTimeout,
		})
	}
	if opts.Redis != nil {
		identity = adapters.NewCachedIdentityProvider(identity, opts.Redis, cfg.Identity.UserCacheTTL)
	}

	suggestions := opts.Suggestions
	if suggestions == nil {
		suggestions = adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	}

	emailService := email.NewService(emailQueueRepo, clock, cfg.Email.AppBaseURL)

	emailWorker, err := newEmailWorker(cfg, emailQueueRepo, opts.EmailSender, clock)
	if err != nil {
		return nil, err
	}

	// Create auth use cases
	authenticateUseCase := auth.NewAuthenticateUseCase(identity)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, spendRepo)

	// Create spend use cases
	listSpendsUseCase := spend.NewListSpendsUseCase(spendRepo)
	getSpendUseCase := spend.NewGetSpendUseCase(spendRepo)
	createSpendUseCase := spend.NewCreateSpendUseCase(spendRepo, categoryRepo, clock)
	updateSpendUseCase := spend.NewUpdateSpendUseCase(spendRepo, categoryRepo, clock)
	deleteSpendUseCase := spend.NewDeleteSpendUseCase(spendRepo)
	suggestCategoryUseCase := spend.NewSuggestCategoryUseCase(categoryRepo, suggestions)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, clock)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	addContributionUseCase := goal.NewAddContributionUseCase(goalRepo, emailService)
	listContributionsUseCase := goal.NewListContributionsUseCase(goalRepo)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	spendController := controller.NewSpendController(
		listSpendsUseCase,
		getSpendUseCase,
		createSpendUseCase,
		updateSpendUseCase,
		deleteSpendUseCase,
		suggestCategoryUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		getGoalUseCase,
		createGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		addContributionUseCase,
		listContributionsUseCase,
	)

	// Create middleware
	suggestionRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.RateLimit.SuggestionLimit,
		cfg.RateLimit.SuggestionWindow,
	)
	authMiddleware := middleware.NewAuthMiddleware(authenticateUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		spendController,
		goalController,
		suggestionRateLimiter,
		authMiddleware,
		cfg.CORS.AllowedOrigins,
	)

	return &Injector{
		Config:      cfg,
		Database:    database,
		Router:      r,
		EmailWorker: emailWorker,
		RateLimiter: suggestionRateLimiter,
	}, nil
}

// newEmailWorker builds the queue worker. Without a sender or a Resend API key
// jobs stay queued and no worker runs.
func newEmailWorker(
	cfg *config.Config,
	queue adapter.EmailQueueRepository,
	sender adapter.EmailSender,
	clock adapter.Clock,
) (*email.Worker, error) {
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY is not set, goal reached emails will stay queued")
			return nil, nil
		}
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	workerCfg := email.DefaultWorkerConfig()
	if cfg.Email.PollInterval > 0 {
		workerCfg.PollInterval = cfg.Email.PollInterval
	}
	if cfg.Email.BatchSize > 0 {
		workerCfg.BatchSize = cfg.Email.BatchSize
	}
	workerCfg.Retention = cfg.Email.Retention

	return email.NewWorker(queue, sender, renderer, clock, workerCfg), nil
}

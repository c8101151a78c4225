package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/applications"
	googleauth "cvmaker-backend/internal/auth"
	"cvmaker-backend/internal/cvs"
	"cvmaker-backend/internal/feedback"
	"cvmaker-backend/internal/interview"
	"cvmaker-backend/internal/jobs"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/llm/gemini"
	"cvmaker-backend/internal/llm/openai"
	"cvmaker-backend/internal/mail"
	"cvmaker-backend/internal/shared/auth"
	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/server"
	"cvmaker-backend/internal/shared/storage/db"
	"cvmaker-backend/internal/shared/storage/object"
	localstore "cvmaker-backend/internal/shared/storage/object/local"
	miniostore "cvmaker-backend/internal/shared/storage/object/minio"
	s3store "cvmaker-backend/internal/shared/storage/object/s3"
	"cvmaker-backend/internal/shared/telemetry"
	"cvmaker-backend/internal/users"
)

// App holds shared dependencies and the wired services.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	States       googleauth.StateStore
	Issuer       *auth.Issuer
	Users        *users.Service
	CVs          *cvs.Service
	Jobs         *jobs.Service
	Applications *applications.Service
	Interview    *interview.Service
	Feedback     *feedback.Service
	GoogleAuth   *googleauth.GoogleService

	closers []func() error
}

// Build connects to backing services and wires every feature.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil {
		app.DB = sqlDB
		app.closers = append(app.closers, sqlDB.Close)
	}

	if app.Store, err = buildStore(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	extractor, err := buildExtractor(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	mailer, err := buildMailer(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	if app.States, err = buildStateStore(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if closer, ok := app.States.(*googleauth.RedisStateStore); ok {
		app.closers = append(app.closers, closer.Close)
	}
	if app.Issuer, err = auth.NewIssuer(cfg.JWTSecret, cfg.Env, cfg.JWTTTL); err != nil {
		app.Close()
		return nil, err
	}

	buildServices(app, extractor, mailer)

	if cfg.SeedQuestions {
		n, err := app.Interview.Seed(ctx)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("seed interview questions: %w", err)
		}
		telemetry.Info("bootstrap.interview_seeded", map[string]any{"sets": n})
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		DB:       app.DB,
		Verifier: app.Issuer,
		Handlers: []server.RouteRegistrar{
			users.NewHandler(app.Users),
			app.GoogleAuth,
			cvs.NewHandler(app.CVs),
			jobs.NewHandler(app.Jobs, app.Users),
			applications.NewHandler(app.Applications, app.Users),
			interview.NewHandler(app.Interview),
			feedback.NewHandler(app.Feedback, app.Users),
		},
	})
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildServices(app *App, extractor llm.Extractor, mailer mail.Sender) {
	var (
		userRepo        users.Repo
		cvRepo          cvs.Repo
		jobRepo         jobs.Repo
		applicationRepo applications.Repo
		questionRepo    interview.Repo
		feedbackRepo    feedback.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		cvRepo = &cvs.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		applicationRepo = &applications.PGRepo{DB: app.DB}
		questionRepo = &interview.PGRepo{DB: app.DB}
		feedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		cvRepo = cvs.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		applicationRepo = applications.NewMemoryRepo()
		questionRepo = interview.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
	}

	cfg := app.Config
	app.Users = users.NewService(userRepo, app.Issuer, mailer, cfg.BcryptCost, cfg.UIBaseURL)
	app.CVs = cvs.NewService(app.Store, cvRepo, extractor)
	app.Jobs = jobs.NewService(jobRepo)
	app.Applications = applications.NewService(applicationRepo, app.CVs, app.Users, app.Jobs)
	app.Interview = interview.NewService(questionRepo)
	app.Feedback = feedback.NewService(feedbackRepo, app.Users)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UILoginRedirectURL,
		app.Users,
		app.States,
	)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, db.ErrNoDatabaseURL
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database unavailable", "err": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			Region:    cfg.AWSRegion,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildExtractor selects the LLM provider. Without an API key the dev
// environments fall back to the placeholder, which fails every extraction.
func buildExtractor(ctx context.Context, cfg config.Config) (llm.Extractor, error) {
	var (
		extractor llm.Extractor
		err       error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.PlaceholderClient{}, nil
	case "gemini":
		extractor, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	default:
		extractor, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider, "err": err})
			return llm.PlaceholderClient{}, nil
		}
		return nil, err
	}
	return extractor, nil
}

func buildMailer(cfg config.Config) (mail.Sender, error) {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return mail.LogSender{}, nil
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}

func buildStateStore(ctx context.Context, cfg config.Config) (googleauth.StateStore, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return googleauth.NewMemoryStateStore(), nil
	}
	store, err := googleauth.NewRedisStateStore(ctx, cfg.RedisURL)
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_oauth_state", map[string]any{"err": err})
			return googleauth.NewMemoryStateStore(), nil
		}
		return nil, err
	}
	return store, nil
}

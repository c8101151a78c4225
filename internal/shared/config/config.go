package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"cvmaker-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowOrigin    []string
	DatabaseURL        string
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
	LLMProvider        string
	LLMModel           string
	OpenAIAPIKey       string
	GeminiAPIKey       string
	LLMTimeout         time.Duration
	JWTSecret          string
	JWTTTL             time.Duration
	BcryptCost         int
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIBaseURL          string
	UILoginRedirectURL string
	RedisURL           string
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	MailFrom           string
	AdminEmail         string
	SeedQuestions      bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
	}

	uiBase := strings.TrimRight(v.GetString("UI_BASE_URL"), "/")
	loginRedirect := v.GetString("UI_LOGIN_REDIRECT_URL")
	if loginRedirect == "" {
		loginRedirect = uiBase + "/login"
	}

	return Config{
		Port:               v.GetString("PORT"),
		Env:                env,
		LogLevel:           v.GetString("LOG_LEVEL"),
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:        dbURL,
		ObjectStoreType:    normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:      v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		SSEKMSKeyID:        v.GetString("SSE_KMS_KEY_ID"),
		MinioEndpoint:      v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey:     v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey:     v.GetString("MINIO_SECRET_KEY"),
		MinioBucket:        v.GetString("MINIO_BUCKET"),
		MinioUseSSL:        v.GetBool("MINIO_USE_SSL"),
		LLMProvider:        normalizeLLMProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:           v.GetString("LLM_MODEL"),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		LLMTimeout:         time.Duration(v.GetInt("LLM_TIMEOUT_SECONDS")) * time.Second,
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		UIBaseURL:          uiBase,
		UILoginRedirectURL: loginRedirect,
		RedisURL:           v.GetString("REDIS_URL"),
		SMTPHost:           v.GetString("SMTP_HOST"),
		SMTPPort:           v.GetInt("SMTP_PORT"),
		SMTPUsername:       v.GetString("SMTP_USERNAME"),
		SMTPPassword:       v.GetString("SMTP_PASSWORD"),
		MailFrom:           v.GetString("MAIL_FROM"),
		AdminEmail:         v.GetString("ADMIN_EMAIL"),
		SeedQuestions:      v.GetBool("SEED_INTERVIEW_QUESTIONS"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("MINIO_BUCKET", "cvs")
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_TIMEOUT_SECONDS", 120)
	v.SetDefault("JWT_TTL_HOURS", 168)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("UI_BASE_URL", "http://localhost:5173")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@cvmaker.local")
	v.SetDefault("ADMIN_EMAIL", "admin@cvmaker.local")
	v.SetDefault("SEED_INTERVIEW_QUESTIONS", true)
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}

func normalizeLLMProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return "gemini"
	case "none", "off", "disabled":
		return "none"
	default:
		return "openai"
	}
}

// IsDevLike reports whether env allows in-memory fallbacks.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/aicourse-backend/internal/clients/redis"
	"github.com/yungbote/aicourse-backend/internal/data/db"
	httpserver "github.com/yungbote/aicourse-backend/internal/http"
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/steps"
	"github.com/yungbote/aicourse-backend/internal/observability"
	"github.com/yungbote/aicourse-backend/internal/platform/envutil"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

type Config struct {
	Port        string
	RootPath    string
	CORSOrigins []string

	OpenAI                openai.Config
	BackendMaxConcurrency int
	Steps                 steps.Config

	// Qdrant is nil when QDRANT_URL is unset; skill lookup is then disabled.
	Qdrant *qdrant.Config
	Redis  redis.CacheConfig
	DB     db.Config
	Otel   observability.OtelConfig
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:                  envutil.String("PORT", "8080"),
		RootPath:              envutil.String("ROOT_PATH", httpserver.DefaultRootPath),
		CORSOrigins:           splitList(envutil.String("CORS_ORIGINS", "")),
		OpenAI:                openai.ConfigFromEnv(),
		BackendMaxConcurrency: envutil.PositiveInt("BACKEND_MAX_CONCURRENCY", gateway.DefaultMaxConcurrency),
		Steps:                 steps.ConfigFromEnv(),
		Redis:                 redis.CacheConfigFromEnv(),
		DB:                    db.ConfigFromEnv(),
		Otel:                  observability.OtelConfigFromEnv(),
	}
	if cfg.OpenAI.APIKey == "" {
		return Config{}, fmt.Errorf("missing OPENAI_API_KEY")
	}
	if strings.TrimSpace(os.Getenv("QDRANT_URL")) != "" {
		qc, err := qdrant.ResolveConfigFromEnv()
		if err != nil {
			return Config{}, fmt.Errorf("qdrant config: %w", err)
		}
		cfg.Qdrant = &qc
	}

	log.Info("Loaded configuration",
		"port", cfg.Port,
		"root_path", cfg.RootPath,
		"model", cfg.OpenAI.Model,
		"backend_max_concurrency", cfg.BackendMaxConcurrency,
		"fanout_concurrency", cfg.Steps.FanoutLimit,
		"quiz_size", cfg.Steps.QuizSize,
		"skills_lookup", cfg.Qdrant != nil,
		"response_cache", cfg.Redis.Addr != "",
	)
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

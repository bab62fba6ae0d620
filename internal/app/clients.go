package app

import (
	"fmt"

	"github.com/yungbote/aicourse-backend/internal/clients/redis"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/openai"
	"github.com/yungbote/aicourse-backend/internal/platform/qdrant"
)

type Clients struct {
	OpenAI openai.Client
	// Cache and Skills are nil when their backends are not configured.
	Cache  redis.ResponseCache
	Skills qdrant.Store
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	openaiClient, err := openai.NewClient(log, cfg.OpenAI)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	out := Clients{OpenAI: openaiClient}

	// Redis
	if cfg.Redis.Addr != "" {
		cache, err := redis.NewResponseCache(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis response cache: %w", err)
		}
		out.Cache = cache
	}

	// Qdrant
	if cfg.Qdrant != nil {
		store, err := qdrant.NewStore(log, *cfg.Qdrant)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init qdrant store: %w", err)
		}
		out.Skills = instrumentVectorStore(log, store)
	}
	return out, nil
}

func (c Clients) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}

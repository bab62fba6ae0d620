package app

import (
	"github.com/yungbote/aicourse-backend/internal/modules/course/gateway"
	"github.com/yungbote/aicourse-backend/internal/modules/course/skills"
	"github.com/yungbote/aicourse-backend/internal/modules/course/steps"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/services"
)

type Services struct {
	Gateway     *gateway.Gateway
	Skills      *skills.Lookup
	Pipeline    services.PipelineService
	Translation services.TranslationService
	Runs        services.RunService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos) Services {
	log.Info("Wiring services...")

	gw := gateway.New(log, clients.OpenAI, clients.Cache, cfg.BackendMaxConcurrency)
	deps := steps.Deps{
		Log:    log,
		Gen:    gw,
		Config: cfg.Steps,
	}
	var lookup *skills.Lookup
	if clients.Skills != nil {
		lookup = skills.NewLookup(log, clients.Skills, gw, gw)
		deps.Skills = lookup
	}

	return Services{
		Gateway:     gw,
		Skills:      lookup,
		Pipeline:    services.NewPipelineService(log, deps, repos.Runs),
		Translation: services.NewTranslationService(log, deps, repos.Runs),
		Runs:        services.NewRunService(log, repos.Runs),
	}
}

package app

import (
	httpserver "github.com/yungbote/aicourse-backend/internal/http"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *httpserver.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:                log,
		ServiceName:        serviceName,
		RootPath:           cfg.RootPath,
		CORSOrigins:        cfg.CORSOrigins,
		CourseHandler:      handlers.Course,
		TranslationHandler: handlers.Translation,
		DocumentHandler:    handlers.Document,
		RunHandler:         handlers.Run,
		HealthHandler:      handlers.Health,
	})
}

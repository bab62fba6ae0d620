package app

import (
	httpH "github.com/yungbote/aicourse-backend/internal/http/handlers"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Course      *httpH.CourseHandler
	Translation *httpH.TranslationHandler
	Document    *httpH.DocumentHandler
	Run         *httpH.RunHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Course:      httpH.NewCourseHandler(log, services.Pipeline),
		Translation: httpH.NewTranslationHandler(log, services.Translation),
		Document:    httpH.NewDocumentHandler(log),
		Run:         httpH.NewRunHandler(services.Runs),
	}
}

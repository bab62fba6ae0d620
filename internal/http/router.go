package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/aicourse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/aicourse-backend/internal/http/middleware"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

const DefaultRootPath = "/aicourseprocessing"

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	RootPath    string
	CORSOrigins []string

	CourseHandler      *httpH.CourseHandler
	TranslationHandler *httpH.TranslationHandler
	DocumentHandler    *httpH.DocumentHandler
	RunHandler         *httpH.RunHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	api := r.Group(normalizeRootPath(cfg.RootPath))
	{
		// Health
		if cfg.HealthHandler != nil {
			api.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		}

		// Processing
		if cfg.CourseHandler != nil {
			api.POST("/process_video", cfg.CourseHandler.ProcessVideo)
			api.POST("/generate_quiz", cfg.CourseHandler.GenerateQuiz)
		}

		// Translation
		if cfg.TranslationHandler != nil {
			api.POST("/translate_video/:language", cfg.TranslationHandler.TranslateVideo)
			api.POST("/translate_course_meta/:language", cfg.TranslationHandler.TranslateCourseMeta)
		}

		// Documents
		if cfg.DocumentHandler != nil {
			api.POST("/split_document", cfg.DocumentHandler.SplitDocument)
			api.POST("/export_quiz", cfg.DocumentHandler.ExportQuiz)
			api.POST("/import_quiz", cfg.DocumentHandler.ImportQuiz)
		}

		// Runs
		if cfg.RunHandler != nil {
			api.GET("/runs", cfg.RunHandler.ListRuns)
			api.GET("/runs/:id", cfg.RunHandler.GetRun)
		}
	}

	return r
}

// normalizeRootPath turns "", "/" and "x/" into a group prefix gin accepts.
func normalizeRootPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

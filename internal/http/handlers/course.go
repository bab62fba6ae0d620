package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/http/middleware"
	"github.com/yungbote/aicourse-backend/internal/http/response"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/services"
)

type CourseHandler struct {
	log      *logger.Logger
	pipeline services.PipelineService
}

func NewCourseHandler(log *logger.Logger, pipeline services.PipelineService) *CourseHandler {
	return &CourseHandler{log: log.With("handler", "CourseHandler"), pipeline: pipeline}
}

// POST /process_video
func (h *CourseHandler) ProcessVideo(c *gin.Context) {
	var req course.ProcessVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	units, runID, err := h.pipeline.ProcessVideo(c.Request.Context(), req)
	setRunID(c, runID)
	if err != nil {
		fail(c, err)
		return
	}
	response.RespondOK(c, units)
}

// POST /generate_quiz
func (h *CourseHandler) GenerateQuiz(c *gin.Context) {
	var req course.ProcessVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	set, runID, err := h.pipeline.GenerateQuiz(c.Request.Context(), req)
	setRunID(c, runID)
	if err != nil {
		fail(c, err)
		return
	}
	response.RespondOK(c, set)
}

func setRunID(c *gin.Context, id uuid.UUID) {
	if id != uuid.Nil {
		c.Header(middleware.HeaderRunID, id.String())
	}
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	response.RespondError(c, err)
}

package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/http/response"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/services"
)

type TranslationHandler struct {
	log *logger.Logger
	tr  services.TranslationService
}

func NewTranslationHandler(log *logger.Logger, tr services.TranslationService) *TranslationHandler {
	return &TranslationHandler{log: log.With("handler", "TranslationHandler"), tr: tr}
}

// POST /translate_video/:language
func (h *TranslationHandler) TranslateVideo(c *gin.Context) {
	language, err := languageParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var units []course.ContentUnit
	if err := c.ShouldBindJSON(&units); err != nil {
		fail(c, err)
		return
	}
	out, runID, err := h.tr.TranslateVideo(c.Request.Context(), units, language)
	setRunID(c, runID)
	if err != nil {
		fail(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /translate_course_meta/:language
func (h *TranslationHandler) TranslateCourseMeta(c *gin.Context) {
	language, err := languageParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var w course.CourseWrapper
	if err := c.ShouldBindJSON(&w); err != nil {
		fail(c, err)
		return
	}
	out, runID, err := h.tr.TranslateCourseMeta(c.Request.Context(), w, language)
	setRunID(c, runID)
	if err != nil {
		fail(c, err)
		return
	}
	response.RespondOK(c, out)
}

func languageParam(c *gin.Context) (string, error) {
	language := strings.TrimSpace(c.Param("language"))
	if language == "" {
		return "", apierr.Validationf("translate", "target language is required")
	}
	return language, nil
}

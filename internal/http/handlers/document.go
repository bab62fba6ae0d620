package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/http/response"
	"github.com/yungbote/aicourse-backend/internal/modules/course/docsplit"
	"github.com/yungbote/aicourse-backend/internal/modules/course/export"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
)

type DocumentHandler struct {
	log *logger.Logger
}

func NewDocumentHandler(log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{log: log.With("handler", "DocumentHandler")}
}

// POST /split_document
func (h *DocumentHandler) SplitDocument(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, err)
		return
	}
	sections := docsplit.Split(string(raw))
	h.log.Debug("Split document", "bytes", len(raw), "sections", len(sections))
	response.RespondOK(c, gin.H{"sections": sections})
}

// POST /export_quiz
func (h *DocumentHandler) ExportQuiz(c *gin.Context) {
	var quiz []course.QuizQuestion
	if err := c.ShouldBindJSON(&quiz); err != nil {
		fail(c, err)
		return
	}
	b, err := export.Workbook(quiz)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="quiz.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, b)
}

// POST /import_quiz
func (h *DocumentHandler) ImportQuiz(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, err)
		return
	}
	quiz, err := export.Read(bytes.NewReader(raw))
	if err != nil {
		fail(c, err)
		return
	}
	h.log.Debug("Imported quiz workbook", "bytes", len(raw), "questions", len(quiz))
	response.RespondOK(c, quiz)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/aicourse-backend/internal/http/response"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
	"github.com/yungbote/aicourse-backend/internal/services"
)

type RunHandler struct {
	runs services.RunService
}

func NewRunHandler(runs services.RunService) *RunHandler {
	return &RunHandler{runs: runs}
}

// GET /runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	run, err := h.runs.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if run == nil {
		response.RespondNotFound(c, "run not found")
		return
	}
	response.RespondOK(c, run)
}

// GET /runs?kind=&limit=
func (h *RunHandler) ListRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := parseLimit(raw)
		if err != nil {
			fail(c, err)
			return
		}
		limit = n
	}
	out, err := h.runs.ListRecent(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"runs": out})
}

func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apierr.Validationf("list runs", "invalid limit %q", raw)
	}
	return n, nil
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform failure payload: the raw error message under "detail".
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondError writes err as a 500. Every failure on the processing endpoints maps to the
// same status; callers do not pick codes.
func RespondError(c *gin.Context, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Detail: msg})
}

func RespondNotFound(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorBody{Detail: msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Data:    data,
		Message: message,
	})
}

// Error writes the failure envelope. Client errors are logged at warn level,
// everything else at error level.
func Error(c *gin.Context, code int, err interface{}) {
	msg := ""
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = http.StatusText(http.StatusInternalServerError)
	}

	if code < http.StatusInternalServerError {
		zap.S().Warnf("API error %d on %s %s: %s", code, c.Request.Method, c.FullPath(), msg)
	} else {
		zap.S().Errorf("API error %d on %s %s: %s", code, c.Request.Method, c.FullPath(), msg)
	}

	c.AbortWithStatusJSON(code, Response{
		Code:    -1,
		Data:    nil,
		Message: msg,
	})
}

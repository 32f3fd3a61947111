package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, errorBody(status, err, message))
}

// JSONAbort sends a structured error response and stops the handler chain.
// Used by middleware that rejects a request before it reaches a handler.
func JSONAbort(c *gin.Context, status int, err error, message string) {
	c.AbortWithStatusJSON(status, errorBody(status, err, message))
}

func errorBody(status int, err error, message string) gin.H {
	body := gin.H{
		"status":  status,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return body
}

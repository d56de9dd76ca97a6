package api

import (
	"github.com/gin-gonic/gin"
)

// errorResponse writes a JSON error envelope.
func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"error": message,
	})
}

// badRequestResponse writes a 400 with the given message.
func badRequestResponse(c *gin.Context, message string) {
	c.JSON(400, gin.H{
		"error": message,
	})
}

package util

import "github.com/gin-gonic/gin"

// OK writes the standard success envelope, merging extra fields into it.
func OK(c *gin.Context, status int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes the standard failure envelope.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": msg,
	})
}

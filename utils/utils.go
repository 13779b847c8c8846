package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts handler errors collected by gin into one JSON
// response instead of leaking them to the client as plain text.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Printf("[HTTP-ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}

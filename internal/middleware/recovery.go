package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"mongodeck/internal/apis/dtos"

	"github.com/gin-gonic/gin"
)

// CustomRecoveryMiddleware handles panics and returns a proper response
// DTO, logging the panic with the request scope so it can be correlated
// through the request id.
func CustomRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := c.GetString("requestID")
				log.Printf("Recovery -> panic on %s %s (request %s): %v\nStack Trace:\n%s",
					c.Request.Method, c.Request.URL.Path, requestID, err, string(debug.Stack()))

				// Panic detail stays out of the response outside debug mode
				errorMsg := "Internal Server Error"
				if gin.IsDebugging() {
					errorMsg = fmt.Sprintf("Internal Server Error: %v", err)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, dtos.Response{
					Success: false,
					Error:   &errorMsg,
				})
			}
		}()
		c.Next()
	}
}

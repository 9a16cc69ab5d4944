package handlers

import (
	"net/http"

	"mongodeck/internal/apis/dtos"

	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope. Internal errors keep their
// detail out of the response unless gin runs in debug mode.
func respondError(c *gin.Context, status uint, err error) {
	msg := err.Error()
	if status == http.StatusInternalServerError && !gin.IsDebugging() {
		msg = "Internal Server Error"
	}
	c.JSON(int(status), dtos.Response{
		Success: false,
		Error:   &msg,
	})
}

func respondOK(c *gin.Context, status uint, data interface{}) {
	c.JSON(int(status), dtos.Response{
		Success: true,
		Data:    data,
	})
}

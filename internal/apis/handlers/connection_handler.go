package handlers

import (
	"net/http"

	"mongodeck/internal/apis/dtos"
	"mongodeck/internal/services"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionService services.ConnectionService
}

func NewConnectionHandler(connectionService services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// @Summary Connect to a database
// @Description Open a connection to a MongoDB deployment, replacing any prior one
// @Accept json
// @Produce json
// @Param connectRequest body dtos.ConnectRequest true "Connect request"
// @Success 200 {object} dtos.Response

func (h *ConnectionHandler) Connect(c *gin.Context) {
	var req dtos.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	response, statusCode, err := h.connectionService.Connect(c.Request.Context(), &req)
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Disconnect
// @Description Close the active connection; a no-op when none exists
// @Produce json

func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	response, statusCode, err := h.connectionService.Disconnect(c.Request.Context())
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Connection status
// @Produce json

func (h *ConnectionHandler) Status(c *gin.Context) {
	respondOK(c, http.StatusOK, h.connectionService.Status())
}

// @Summary Database stats
// @Description Aggregate stats for the connected database
// @Produce json

func (h *ConnectionHandler) Stats(c *gin.Context) {
	response, statusCode, err := h.connectionService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

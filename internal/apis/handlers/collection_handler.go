package handlers

import (
	"net/http"

	"mongodeck/internal/apis/dtos"
	"mongodeck/internal/services"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collectionService services.CollectionService
}

func NewCollectionHandler(collectionService services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// @Summary List collections
// @Description List all collections with document counts
// @Produce json

func (h *CollectionHandler) List(c *gin.Context) {
	response, statusCode, err := h.collectionService.ListCollections(c.Request.Context())
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Browse a collection
// @Description Page through a collection with optional search and filter
// @Produce json
// @Param name path string true "Collection name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sortBy query string false "Sort field" default(_id)
// @Param sortOrder query string false "Sort direction, desc or asc" default(desc)
// @Param search query string false "Free-text search"
// @Param filter query string false "Raw JSON filter"

func (h *CollectionHandler) Browse(c *gin.Context) {
	var query dtos.BrowseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	response, statusCode, err := h.collectionService.Browse(c.Request.Context(), c.Param("name"), &query)
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Get one document
// @Param name path string true "Collection name"
// @Param id path string true "Document identifier"

func (h *CollectionHandler) GetOne(c *gin.Context) {
	response, statusCode, err := h.collectionService.GetOne(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Update one document
// @Description Apply a patch; the primary key field is stripped from the payload
// @Accept json
// @Produce json

func (h *CollectionHandler) Update(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	response, statusCode, err := h.collectionService.Update(c.Request.Context(), c.Param("name"), c.Param("id"), patch)
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Delete one document

func (h *CollectionHandler) Delete(c *gin.Context) {
	response, statusCode, err := h.collectionService.DeleteOne(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Bulk delete documents
// @Accept json
// @Produce json
// @Param bulkDeleteRequest body dtos.BulkDeleteRequest true "Identifier list"

func (h *CollectionHandler) BulkDelete(c *gin.Context) {
	var req dtos.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	response, statusCode, err := h.collectionService.BulkDelete(c.Request.Context(), c.Param("name"), req.IDs)
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

// @Summary Prune old documents
// @Description Delete documents whose date field is older than the cutoff
// @Accept json
// @Produce json
// @Param pruneRequest body dtos.PruneRequest false "Prune parameters"

func (h *CollectionHandler) Prune(c *gin.Context) {
	req := dtos.PruneRequest{
		Days:      services.DefaultPruneDays,
		DateField: services.DefaultPruneField,
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		if req.Days == 0 {
			req.Days = services.DefaultPruneDays
		}
	}

	response, statusCode, err := h.collectionService.PruneOlderThan(c.Request.Context(), c.Param("name"), req.Days, req.DateField)
	if err != nil {
		respondError(c, statusCode, err)
		return
	}

	respondOK(c, statusCode, response)
}

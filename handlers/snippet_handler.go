package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"

	"github.com/michael123610/codesnippet-hub/helper"
	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/services"
)

type SnippetHandler struct {
	snippetService    services.SnippetService
	engagementService services.EngagementService
	Helper            *helper.HTTPHelper
}

func NewSnippetHandler(snippetService services.SnippetService, engagementService services.EngagementService, httpHelper *helper.HTTPHelper) *SnippetHandler {
	return &SnippetHandler{
		snippetService:    snippetService,
		engagementService: engagementService,
		Helper:            httpHelper,
	}
}

// currentUserID returns the authenticated user or 0 for anonymous
// requests behind the optional auth middleware.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snippet ID"})
		return 0, false
	}
	return uint(id), true
}

func (h *SnippetHandler) sendError(c *gin.Context, err error) {
	code := h.Helper.GetStatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(code, gin.H{"error": message})
}

func (h *SnippetHandler) ListSnippets(c *gin.Context) {
	var params models.SnippetListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.snippetService.ListSnippets(params)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *SnippetHandler) GetSnippet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.snippetService.GetSnippet(id, currentUserID(c))
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *SnippetHandler) CreateSnippet(c *gin.Context) {
	userID := currentUserID(c)

	var req models.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snippetID, err := h.snippetService.CreateSnippet(userID, req)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Snippet created successfully",
		"snippet_id": snippetID,
	})
}

func (h *SnippetHandler) DeleteSnippet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.snippetService.DeleteSnippet(currentUserID(c), id); err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Snippet deleted successfully"})
}

func (h *SnippetHandler) ToggleLike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	liked, err := h.engagementService.ToggleLike(currentUserID(c), id)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *SnippetHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	favorited, err := h.engagementService.ToggleFavorite(currentUserID(c), id)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

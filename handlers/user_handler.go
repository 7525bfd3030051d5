package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/michael123610/codesnippet-hub/helper"
	"github.com/michael123610/codesnippet-hub/services"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, httpHelper *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: httpHelper}
}

func (h *UserHandler) sendError(c *gin.Context, err error) {
	code := h.Helper.GetStatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(code, gin.H{"error": message})
}

func pagingQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	return page, limit
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := h.userService.GetProfile(uint(id))
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetUserSnippets(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	page, limit := pagingQuery(c)
	list, err := h.userService.GetUserSnippets(uint(id), page, limit)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetMySnippets(c *gin.Context) {
	page, limit := pagingQuery(c)
	list, err := h.userService.GetOwnSnippets(currentUserID(c), page, limit)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetMyFavorites(c *gin.Context) {
	page, limit := pagingQuery(c)
	list, err := h.userService.GetFavorites(currentUserID(c), page, limit)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

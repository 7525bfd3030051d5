package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/michael123610/codesnippet-hub/helper"
	"github.com/michael123610/codesnippet-hub/services"
)

type TagHandler struct {
	tagService services.TagService
	Helper     *helper.HTTPHelper
}

func NewTagHandler(tagService services.TagService, httpHelper *helper.HTTPHelper) *TagHandler {
	return &TagHandler{tagService: tagService, Helper: httpHelper}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

func (h *TagHandler) GetPopularTags(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid limit", h.Helper.EmptyJsonMap())
		return
	}

	tags, err := h.tagService.GetPopularTags(limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", tags)
}

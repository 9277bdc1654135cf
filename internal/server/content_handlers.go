package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kamilwozniak/portfolio/backend/internal/content"
	"go.uber.org/zap"
)

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func localeOf(c *gin.Context) string {
	return content.NormalizeLocale(c.Query("locale"))
}

func (h *httpHandler) contentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		h.logger.Error("content operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func (h *httpHandler) handleListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	category := content.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_category"})
		return
	}
	query := content.PostQuery{
		Category: category,
		Hashtag:  c.Query("hashtag"),
		Page:     page,
		Size:     size,
	}
	result, err := h.content.ListPublishedPosts(c.Request.Context(), query, localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *httpHandler) handleGetPostBySlug(c *gin.Context) {
	view, err := h.content.GetPostBySlug(c.Request.Context(), c.Param("slug"), localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *httpHandler) handleListHashtags(c *gin.Context) {
	tags, err := h.content.ListHashtags(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *httpHandler) handleListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Categories(localeOf(c)))
}

func (h *httpHandler) handleListExperiences(c *gin.Context) {
	views, err := h.content.ListExperiences(c.Request.Context(), localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *httpHandler) handleListSkillCategories(c *gin.Context) {
	views, err := h.content.ListSkillCategories(c.Request.Context(), localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *httpHandler) handleListSoftSkills(c *gin.Context) {
	views, err := h.content.ListSoftSkills(c.Request.Context(), localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *httpHandler) handleGetSettings(c *gin.Context) {
	view, err := h.content.GetSettings(c.Request.Context(), localeOf(c))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *httpHandler) handleAdminListPosts(c *gin.Context) {
	posts, err := h.content.ListPosts(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *httpHandler) handleAdminGetPost(c *gin.Context) {
	post, err := h.content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *httpHandler) handleCreatePost(c *gin.Context) {
	var input content.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	post, err := h.content.CreatePost(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *httpHandler) handleUpdatePost(c *gin.Context) {
	var input content.PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	post, err := h.content.UpdatePost(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.contentError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *httpHandler) handleDeletePost(c *gin.Context) {
	if err := h.content.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleReorderPosts(c *gin.Context) {
	h.handleReorder(c, h.content.ReorderPosts)
}

func (h *httpHandler) handleAdminListExperiences(c *gin.Context) {
	experiences, err := h.content.ListAllExperiences(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, experiences)
}

func (h *httpHandler) handleCreateExperience(c *gin.Context) {
	var input content.ExperienceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	experience, err := h.content.CreateExperience(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, experience)
}

func (h *httpHandler) handleUpdateExperience(c *gin.Context) {
	var input content.ExperienceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	experience, err := h.content.UpdateExperience(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.contentError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, experience)
}

func (h *httpHandler) handleDeleteExperience(c *gin.Context) {
	if err := h.content.DeleteExperience(c.Request.Context(), c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleReorderExperiences(c *gin.Context) {
	h.handleReorder(c, h.content.ReorderExperiences)
}

func (h *httpHandler) handleAdminListSkillCategories(c *gin.Context) {
	categories, err := h.content.ListAllSkillCategories(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *httpHandler) handleCreateSkillCategory(c *gin.Context) {
	var input content.SkillCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	category, err := h.content.CreateSkillCategory(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *httpHandler) handleUpdateSkillCategory(c *gin.Context) {
	var input content.SkillCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	category, err := h.content.UpdateSkillCategory(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.contentError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *httpHandler) handleDeleteSkillCategory(c *gin.Context) {
	if err := h.content.DeleteSkillCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleReorderSkillCategories(c *gin.Context) {
	h.handleReorder(c, h.content.ReorderSkillCategories)
}

func (h *httpHandler) handleAdminListSoftSkills(c *gin.Context) {
	skills, err := h.content.ListAllSoftSkills(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *httpHandler) handleCreateSoftSkill(c *gin.Context) {
	var input content.SoftSkillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	skill, err := h.content.CreateSoftSkill(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *httpHandler) handleUpdateSoftSkill(c *gin.Context) {
	var input content.SoftSkillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	skill, err := h.content.UpdateSoftSkill(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.contentError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *httpHandler) handleDeleteSoftSkill(c *gin.Context) {
	if err := h.content.DeleteSoftSkill(c.Request.Context(), c.Param("id")); err != nil {
		h.contentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) handleReorderSoftSkills(c *gin.Context) {
	h.handleReorder(c, h.content.ReorderSoftSkills)
}

func (h *httpHandler) handleAdminGetSettings(c *gin.Context) {
	settings, err := h.content.GetSettingsRaw(c.Request.Context())
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *httpHandler) handleUpdateSettings(c *gin.Context) {
	var input content.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	settings, err := h.content.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		h.contentError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *httpHandler) handleReorder(c *gin.Context, reorder func(ctx context.Context, ids []string) error) {
	var request reorderRequest
	if err := c.ShouldBindJSON(&request); err != nil || len(request.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	if err := reorder(c.Request.Context(), request.IDs); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.contentError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

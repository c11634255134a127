package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// GetProfile returns the lecturer's own profile.
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := owner(c)
	if !ok {
		return
	}
	p, err := h.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile patches profile fields. The id is immutable.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, ok := owner(c)
	if !ok {
		return
	}
	var patch portal.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.store.UpdateProfile(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

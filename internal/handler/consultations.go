package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// ListConsultations returns consultation requests, newest first.
func (h *Handler) ListConsultations(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	consultations, err := h.store.ListConsultations(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

// CreateConsultation records a request; it always starts pending.
func (h *Handler) CreateConsultation(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in portal.ConsultationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.replayedKey(c, ownerID) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}
	con, err := h.store.CreateConsultation(c.Request.Context(), ownerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	h.rememberKey(c, ownerID)
	c.JSON(http.StatusCreated, con)
}

// UpdateConsultation patches request details. Status changes go through
// SetConsultationStatus.
func (h *Handler) UpdateConsultation(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch portal.ConsultationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	con, err := h.store.UpdateConsultation(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, con)
}

type statusRequest struct {
	Status portal.ConsultationStatus `json:"status" binding:"required"`
}

// SetConsultationStatus approves or declines a pending request. A request
// that was already decided answers 409.
func (h *Handler) SetConsultationStatus(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	con, err := h.store.SetConsultationStatus(c.Request.Context(), ownerID, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, con)
}

// DeleteConsultation removes a request.
func (h *Handler) DeleteConsultation(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteConsultation(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

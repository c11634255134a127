package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// ListReports returns reports, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	reports, err := h.store.ListReports(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// CreateReport files a report. There is no update endpoint: reports are
// immutable once created.
func (h *Handler) CreateReport(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in portal.ReportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.replayedKey(c, ownerID) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}
	r, err := h.store.CreateReport(c.Request.Context(), ownerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	h.rememberKey(c, ownerID)
	c.JSON(http.StatusCreated, r)
}

// DeleteReport removes a report.
func (h *Handler) DeleteReport(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteReport(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

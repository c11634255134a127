package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// ListStudents returns the lecturer's students ordered by name.
func (h *Handler) ListStudents(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	students, err := h.store.ListStudents(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// CreateStudent registers a student. A student_id already in use by any
// lecturer answers 409.
func (h *Handler) CreateStudent(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in portal.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.replayedKey(c, ownerID) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}
	st, err := h.store.CreateStudent(c.Request.Context(), ownerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	h.rememberKey(c, ownerID)
	c.JSON(http.StatusCreated, st)
}

// UpdateStudent patches a student.
func (h *Handler) UpdateStudent(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch portal.StudentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.store.UpdateStudent(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteStudent removes a student. Repeating the call answers 204 again.
func (h *Handler) DeleteStudent(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteStudent(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

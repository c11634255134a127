package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// ListAssignments returns assignments newest deadline first.
func (h *Handler) ListAssignments(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	assignments, err := h.store.ListAssignments(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// CreateAssignment publishes an assignment. The submission portal starts
// closed unless the input says otherwise.
func (h *Handler) CreateAssignment(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in portal.AssignmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.replayedKey(c, ownerID) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}
	a, err := h.store.CreateAssignment(c.Request.Context(), ownerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	h.rememberKey(c, ownerID)
	c.JSON(http.StatusCreated, a)
}

// UpdateAssignment patches assignment fields other than the portal flag.
func (h *Handler) UpdateAssignment(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch portal.AssignmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.store.UpdateAssignment(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type portalRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// SetPortalOpen toggles the submission portal.
func (h *Handler) SetPortalOpen(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req portalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.store.SetPortalOpen(c.Request.Context(), ownerID, id, *req.Open)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UploadAssignmentFile attaches a file to an existing assignment. The upload
// happens after the assignment exists; if the blob store rejects the file
// the assignment stays as it was, and the failure is reported on its own.
func (h *Handler) UploadAssignmentFile(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage not configured"})
		return
	}

	a, err := h.store.UpdateAssignment(c.Request.Context(), ownerID, id, portal.AssignmentPatch{})
	if err != nil {
		fail(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
		return
	}

	result, err := h.uploader.Upload(id, header.Filename, data)
	if err != nil {
		log.Printf("assignment %s: file upload failed: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "file upload failed"})
		return
	}

	paths := append(a.FilePaths, result.PublicID)
	a, err = h.store.UpdateAssignment(c.Request.Context(), ownerID, id, portal.AssignmentPatch{FilePaths: &paths})
	if err != nil {
		// The blob is stored but unattached; surface the failure without
		// deleting anything.
		log.Printf("assignment %s: attach %s failed: %v", id, result.PublicID, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAssignment removes an assignment.
func (h *Handler) DeleteAssignment(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAssignment(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

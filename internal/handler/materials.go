package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// ListMaterials returns study materials, newest first.
func (h *Handler) ListMaterials(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	materials, err := h.store.ListMaterials(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// CreateMaterial shares content. The declared type decides which content
// field may be populated; mixed payloads answer 400.
func (h *Handler) CreateMaterial(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	var in portal.StudyMaterialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.replayedKey(c, ownerID) {
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate request"})
		return
	}
	m, err := h.store.CreateMaterial(c.Request.Context(), ownerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	h.rememberKey(c, ownerID)
	c.JSON(http.StatusCreated, m)
}

// UpdateMaterial patches material fields.
func (h *Handler) UpdateMaterial(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch portal.StudyMaterialPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := h.store.UpdateMaterial(c.Request.Context(), ownerID, id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UploadMaterialFile uploads a document for a document-type material and
// persists the resulting URL. Upload failures leave the material untouched.
func (h *Handler) UploadMaterialFile(c *gin.Context) {
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

	m, err := h.store.UpdateMaterial(c.Request.Context(), ownerID, id, portal.StudyMaterialPatch{})
	if err != nil {
		fail(c, err)
		return
	}
	if m.Type != portal.MaterialDocument {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only document materials carry a file"})
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
		log.Printf("material %s: file upload failed: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "file upload failed"})
		return
	}

	url := result.SecureURL
	if url == "" {
		url = result.PublicID
	}
	m, err = h.store.UpdateMaterial(c.Request.Context(), ownerID, id, portal.StudyMaterialPatch{FileURL: &url})
	if err != nil {
		log.Printf("material %s: attach %s failed: %v", id, result.PublicID, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMaterial removes shared content.
func (h *Handler) DeleteMaterial(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteMaterial(c.Request.Context(), ownerID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lecturehub/internal/portal"
)

// Dashboard returns per-entity counts for the landing screen. Pending
// consultations are broken out so the sidebar can badge them.
func (h *Handler) Dashboard(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	students, err := h.store.ListStudents(ctx, ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	assignments, err := h.store.ListAssignments(ctx, ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	consultations, err := h.store.ListConsultations(ctx, ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	materials, err := h.store.ListMaterials(ctx, ownerID)
	if err != nil {
		fail(c, err)
		return
	}

	pending := 0
	for _, con := range consultations {
		if con.Status == portal.StatusPending {
			pending++
		}
	}
	openPortals := 0
	for _, a := range assignments {
		if a.PortalOpen {
			openPortals++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"students":              len(students),
		"assignments":           len(assignments),
		"open_portals":          openPortals,
		"consultations":         len(consultations),
		"pending_consultations": pending,
		"materials":             len(materials),
	})
}

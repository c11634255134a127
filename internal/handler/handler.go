// Package handler holds the HTTP controllers. Each screen of the portal maps
// to a small set of endpoints that load, create, patch or delete rows through
// the portal store, always scoped to the authenticated lecturer.
package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lecturehub/internal/auth"
	"lecturehub/internal/portal"
	"lecturehub/internal/storage"
)

// AuthService is the account operations the handlers need; implemented by
// auth.Service.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (uuid.UUID, auth.TokenPair, error)
	Login(ctx context.Context, email, password string) (uuid.UUID, auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (uuid.UUID, auth.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// Uploader stores a file attachment and returns its resulting path/URL;
// implemented by storage.Client. Nil-able: upload endpoints answer 503 when
// no blob store is configured.
type Uploader interface {
	Upload(entityID uuid.UUID, filename string, data []byte) (*storage.UploadResult, error)
}

// Handler bundles the dependencies of all portal endpoints.
type Handler struct {
	store     portal.Store
	authSvc   AuthService
	uploader  Uploader
	maxUpload int64

	mu   sync.Mutex
	seen map[string]time.Time // recently used idempotency keys
}

// New creates a handler. uploader may be nil when no blob store is
// configured.
func New(store portal.Store, authSvc AuthService, uploader Uploader, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = 25 << 20
	}
	return &Handler{
		store:     store,
		authSvc:   authSvc,
		uploader:  uploader,
		maxUpload: maxUpload,
		seen:      make(map[string]time.Time),
	}
}

// Routes registers every endpoint. Auth endpoints are public; the rest sit
// behind the bearer middleware. Extra middleware (the rate limiter) runs on
// both groups, after the bearer middleware on the authenticated one so it
// sees the lecturer identity.
func (h *Handler) Routes(r gin.IRouter, signingKey, issuer string, mw ...gin.HandlerFunc) {
	pub := r.Group("/v1/auth", mw...)
	pub.POST("/register", h.RegisterAccount)
	pub.POST("/login", h.Login)
	pub.POST("/refresh", h.Refresh)
	pub.POST("/logout", h.Logout)

	g := r.Group("/v1", append([]gin.HandlerFunc{auth.LecturerAuth(signingKey, issuer)}, mw...)...)

	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)

	g.GET("/dashboard", h.Dashboard)

	g.GET("/students", h.ListStudents)
	g.POST("/students", h.CreateStudent)
	g.PATCH("/students/:id", h.UpdateStudent)
	g.DELETE("/students/:id", h.DeleteStudent)

	g.GET("/timetable", h.ListTimetable)
	g.POST("/timetable", h.CreateTimetableSlot)
	g.PATCH("/timetable/:id", h.UpdateTimetableSlot)
	g.DELETE("/timetable/:id", h.DeleteTimetableSlot)

	g.GET("/assignments", h.ListAssignments)
	g.POST("/assignments", h.CreateAssignment)
	g.PATCH("/assignments/:id", h.UpdateAssignment)
	g.POST("/assignments/:id/portal", h.SetPortalOpen)
	g.POST("/assignments/:id/files", h.UploadAssignmentFile)
	g.DELETE("/assignments/:id", h.DeleteAssignment)

	g.GET("/consultations", h.ListConsultations)
	g.POST("/consultations", h.CreateConsultation)
	g.PATCH("/consultations/:id", h.UpdateConsultation)
	g.POST("/consultations/:id/status", h.SetConsultationStatus)
	g.DELETE("/consultations/:id", h.DeleteConsultation)

	g.GET("/reports", h.ListReports)
	g.POST("/reports", h.CreateReport)
	g.DELETE("/reports/:id", h.DeleteReport)

	g.GET("/materials", h.ListMaterials)
	g.POST("/materials", h.CreateMaterial)
	g.PATCH("/materials/:id", h.UpdateMaterial)
	g.POST("/materials/:id/file", h.UploadMaterialFile)
	g.DELETE("/materials/:id", h.DeleteMaterial)

	g.GET("/updates", h.ListUpdates)
	g.POST("/updates", h.CreateUpdate)
	g.PATCH("/updates/:id", h.UpdateUpdate)
	g.DELETE("/updates/:id", h.DeleteUpdate)
}

// owner extracts the authenticated lecturer id; aborts 401 when absent.
func owner(c *gin.Context) (uuid.UUID, bool) {
	id, ok := auth.LecturerID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return id, ok
}

// pathID parses the :id route param; aborts 400 on garbage.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// fail maps store errors onto HTTP statuses. Constraint messages are
// surfaced verbatim; anything unrecognized becomes a generic data-access
// error.
func fail(c *gin.Context, err error) {
	var invalid portal.ErrInvalidInput
	switch {
	case errors.Is(err, portal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, portal.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, portal.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "data access failed"})
	}
}

func scopedKey(c *gin.Context, ownerID uuid.UUID) string {
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		return ""
	}
	return ownerID.String() + ":" + key
}

// replayedKey reports whether the request's Idempotency-Key was already spent
// on a successful create. Keys are scoped per lecturer and expire after ten
// minutes.
func (h *Handler) replayedKey(c *gin.Context, ownerID uuid.UUID) bool {
	scoped := scopedKey(c, ownerID)
	if scoped == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	for k, t := range h.seen {
		if now.Sub(t) > 10*time.Minute {
			delete(h.seen, k)
		}
	}
	_, dup := h.seen[scoped]
	return dup
}

// rememberKey spends the request's Idempotency-Key. Called only after the
// create succeeded, so a rejected create leaves the key usable for a
// corrected retry.
func (h *Handler) rememberKey(c *gin.Context, ownerID uuid.UUID) {
	scoped := scopedKey(c, ownerID)
	if scoped == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[scoped] = time.Now()
}

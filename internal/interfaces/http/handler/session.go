package handler

import (
	"github.com/gin-gonic/gin"
	sessionapp "github.com/storefront/backend/internal/application/session"
)

// SessionHandler handles session bootstrap endpoints
type SessionHandler struct {
	BaseHandler
	assignmentService *sessionapp.AssignmentService
	localeService     *sessionapp.LocaleService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(assignmentService *sessionapp.AssignmentService, localeService *sessionapp.LocaleService) *SessionHandler {
	return &SessionHandler{
		assignmentService: assignmentService,
		localeService:     localeService,
	}
}

// RegisterRoutes registers session endpoints
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	session := rg.Group("/session")
	{
		session.POST("/context", h.InitializeContext)
		session.POST("/assignment", h.AssignCatalog)
	}
}

// InitializeContext resolves the display locale and catalog assignment
// for a new session in one call. Locale comes from the Accept-Language
// header with a GeoIP fallback on the client address; the catalog comes
// from the assignment rules matched against the request signals.
//
// POST /api/v1/session/context
func (h *SessionHandler) InitializeContext(c *gin.Context) {
	var req sessionapp.AssignCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.assignmentService.InitializeSession(
		c.Request.Context(),
		h.localeService,
		c.GetHeader("Accept-Language"),
		c.ClientIP(),
		req,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AssignCatalog resolves only the catalog assignment for the given
// session signals, without locale detection.
//
// POST /api/v1/session/assignment
func (h *SessionHandler) AssignCatalog(c *gin.Context) {
	var req sessionapp.AssignCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.assignmentService.AssignCatalog(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

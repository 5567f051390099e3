package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/middleware"
	"github.com/cantouch/socialflow-backend/internal/service"
)

// SessionHandler manages sessions and their credentials
type SessionHandler struct {
	sessions *service.SessionManager
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *service.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /api/v1/sessions
// @Summary Open a new session
// @Tags sessions
// @Produce json
// @Success 200 {object} common.APIResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	session := h.sessions.Create()
	common.SuccessResponse(c, gin.H{"sessionId": session.ID}, nil)
}

// SaveCredentialRequest carries the user-supplied API key
type SaveCredentialRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// SaveCredential handles PUT /api/v1/sessions/credential.
// Saving a key clears any recorded auth failure and moves a workflow stuck
// in the credential-repair sub-case back to idle. The failed request is not
// replayed automatically.
// @Summary Save the session API key
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SaveCredentialRequest true "API key"
// @Success 200 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Router /sessions/credential [put]
func (h *SessionHandler) SaveCredential(c *gin.Context) {
	session := middleware.GetSession(c)

	var req SaveCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	session.Credentials.Set(req.APIKey)
	session.Workflow.CredentialSaved()
	common.SuccessResponse(c, gin.H{"saved": true}, nil)
}

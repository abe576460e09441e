package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/service/notes"
)

// NoteHandler handles the admin customer-note endpoints.
type NoteHandler struct {
	svc    *notes.Service
	logger *zap.Logger
}

// NewNoteHandler constructs the HTTP handler adapter.
func NewNoteHandler(svc *notes.Service, logger *zap.Logger) *NoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteHandler{svc: svc, logger: logger}
}

// List returns customer notes; ?unresolved=true restricts to open ones.
func (h *NoteHandler) List(c *gin.Context) {
	onlyUnresolved := strings.EqualFold(c.Query("unresolved"), "true")

	result, err := h.svc.List(c.Request.Context(), onlyUnresolved)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type resolveRequest struct {
	Resolved *bool `json:"resolved" binding:"required"`
}

// ToggleResolved flips a note's resolution flag.
func (h *NoteHandler) ToggleResolved(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid resolve payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	note, err := h.svc.ToggleResolved(c.Request.Context(), c.Param("id"), *req.Resolved)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

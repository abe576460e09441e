package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/service/fleet"
	"github.com/lindqvistmarin/slipway/internal/service/notes"
)

// PublicHandler serves the unauthenticated customer surface: the read-only
// boat view, note submission and the printable QR code. Everything here is
// keyed by the boat's public identifier, never the internal one.
type PublicHandler struct {
	fleetSvc *fleet.Service
	notesSvc *notes.Service
	baseURL  string
	logger   *zap.Logger
}

// NewPublicHandler constructs the HTTP handler adapter.
func NewPublicHandler(fleetSvc *fleet.Service, notesSvc *notes.Service, baseURL string, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{
		fleetSvc: fleetSvc,
		notesSvc: notesSvc,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}
}

// GetBoat returns the customer-facing projection of a boat.
func (h *PublicHandler) GetBoat(c *gin.Context) {
	view, err := h.fleetSvc.GetPublicBoatView(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SubmitNote records a customer note against a boat.
func (h *PublicHandler) SubmitNote(c *gin.Context) {
	var in notes.NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid note payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	note, err := h.notesSvc.Record(c.Request.Context(), c.Param("publicId"), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

// QRCode renders the printable QR PNG that links to the boat's public page.
func (h *PublicHandler) QRCode(c *gin.Context) {
	publicID := c.Param("publicId")
	if _, err := h.fleetSvc.GetPublicBoatView(c.Request.Context(), publicID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	target := fmt.Sprintf("%s/public/boats/%s", h.baseURL, publicID)
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("qr encoding failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

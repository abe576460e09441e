package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/service/fleet"
)

// BoatHandler handles the admin boat endpoints.
type BoatHandler struct {
	svc    *fleet.Service
	logger *zap.Logger
}

// NewBoatHandler constructs the HTTP handler adapter.
func NewBoatHandler(svc *fleet.Service, logger *zap.Logger) *BoatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoatHandler{svc: svc, logger: logger}
}

// Create registers a new boat, with optional inline owner creation.
func (h *BoatHandler) Create(c *gin.Context) {
	var in fleet.BoatInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid boat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	boat, err := h.svc.CreateBoat(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, boat)
}

// Update replaces a boat's fields.
func (h *BoatHandler) Update(c *gin.Context) {
	var in fleet.BoatInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid boat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	boat, err := h.svc.UpdateBoat(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boat)
}

// List returns all boats.
func (h *BoatHandler) List(c *gin.Context) {
	boats, err := h.svc.ListBoats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boats)
}

// Detail returns a boat with its service entries, invoices and notes.
func (h *BoatHandler) Detail(c *gin.Context) {
	detail, err := h.svc.GetBoatDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

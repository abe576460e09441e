package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/service/fleet"
)

// ServiceHandler handles the service-entry endpoints.
type ServiceHandler struct {
	svc    *fleet.Service
	logger *zap.Logger
}

// NewServiceHandler constructs the HTTP handler adapter.
func NewServiceHandler(svc *fleet.Service, logger *zap.Logger) *ServiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceHandler{svc: svc, logger: logger}
}

// Create logs a unit of work against a boat.
func (h *ServiceHandler) Create(c *gin.Context) {
	var in fleet.ServiceEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid service entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.CreateServiceEntry(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an entry through the work state machine.
func (h *ServiceHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.UpdateServiceStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes an uninvoiced entry.
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteServiceEntry(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

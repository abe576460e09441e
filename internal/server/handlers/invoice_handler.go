package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/service/billing"
)

// InvoiceHandler handles the invoice endpoints.
type InvoiceHandler struct {
	svc    *billing.Service
	logger *zap.Logger
}

// NewInvoiceHandler constructs the HTTP handler adapter.
func NewInvoiceHandler(svc *billing.Service, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{svc: svc, logger: logger}
}

// Create bundles the selected service entries into a new draft invoice.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var in billing.InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid invoice payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	invoice, err := h.svc.CreateInvoice(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// List returns all invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// Get returns a single invoice.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateStatus moves an invoice to an explicitly requested status.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid status payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	invoice, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// Advance moves an invoice one step forward; a no-op on paid invoices.
func (h *InvoiceHandler) Advance(c *gin.Context) {
	invoice, err := h.svc.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

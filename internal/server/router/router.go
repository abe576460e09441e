package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/server/handlers"
)

// Handlers bundles the HTTP adapters the router wires up.
type Handlers struct {
	Boats    *handlers.BoatHandler
	Services *handlers.ServiceHandler
	Invoices *handlers.InvoiceHandler
	Notes    *handlers.NoteHandler
	Public   *handlers.PublicHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/boats", h.Boats.List)
		api.POST("/boats", h.Boats.Create)
		api.GET("/boats/:id", h.Boats.Detail)
		api.PUT("/boats/:id", h.Boats.Update)

		api.POST("/boats/:id/services", h.Services.Create)
		api.PATCH("/services/:id/status", h.Services.UpdateStatus)
		api.DELETE("/services/:id", h.Services.Delete)

		api.POST("/boats/:id/invoices", h.Invoices.Create)
		api.GET("/invoices", h.Invoices.List)
		api.GET("/invoices/:id", h.Invoices.Get)
		api.PATCH("/invoices/:id/status", h.Invoices.UpdateStatus)
		api.POST("/invoices/:id/advance", h.Invoices.Advance)

		api.GET("/notes", h.Notes.List)
		api.PATCH("/notes/:id/resolved", h.Notes.ToggleResolved)
	}

	public := r.Group("/public")
	{
		public.GET("/boats/:publicId", h.Public.GetBoat)
		public.POST("/boats/:publicId/notes", h.Public.SubmitNote)
		public.GET("/boats/:publicId/qr.png", h.Public.QRCode)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler, limiter *IPRateLimiter) {
	registerValidators()
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/presets", presetsHandler)
		api.GET("/qr", qrHandler)
		api.POST("/compliance", h.complianceHandler)

		render := api.Group("/creatives", limiter.RateLimit())
		render.POST("", h.creativesHandler)
		render.POST("/archive", h.archiveHandler)
	}
}

// NewRouter builds an engine with recovery, request ids and logging.
func NewRouter(h *Handler, limiter *IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(h.log))
	r.MaxMultipartMemory = h.maxUpload
	RegisterRoutes(r, h, limiter)
	return r
}

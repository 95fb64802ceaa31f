package api

import "github.com/gin-gonic/gin"

// NewEngine builds a gin engine with the service middleware and routes.
func NewEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), cors(), accessLog(s.logger), observe(s.metrics))
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.root)
	r.GET("/health", health)
	r.POST("/gerar-comunicado", s.createAnnouncement)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/announcements", s.createAnnouncement)
		api.GET("/announcements/:file", s.getAnnouncement)
		api.GET("/announcements/:file/qr", s.announcementQR)
	}
}

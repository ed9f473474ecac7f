package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/config"
	"github.com/sitekit/internal/db"
	"github.com/sitekit/internal/handler"
)

// Setup wires the Gin engine: middleware, static media, public reads
// and the session guarded admin API.
func Setup(cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(handler.RequestLogger(), handler.Metrics(), gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("sitekit_session", store))

	api := handler.NewAPI(db.DB, cache.New(), cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded media is served straight from disk.
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	public := r.Group("/api")
	public.Use(cors.Default())
	{
		public.GET("/announcements", api.PublicAnnouncements)
		public.GET("/announcements/:slug", api.PublicAnnouncementBySlug)
		public.GET("/posts", api.PublicBlogPosts)
		public.GET("/posts/:slug", api.PublicBlogPostBySlug)
		public.GET("/my-life", api.PublicSiteConfig)
		public.POST("/intake", api.SubmitIntake)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/announcements", api.ListAnnouncements)
			auth.GET("/announcements/:id", api.GetAnnouncement)
			auth.POST("/announcements", api.CreateAnnouncement)
			auth.PUT("/announcements/:id", api.UpdateAnnouncement)
			auth.DELETE("/announcements/:id", api.DeleteAnnouncement)

			auth.GET("/posts", api.ListBlogPosts)
			auth.GET("/posts/:id", api.GetBlogPost)
			auth.POST("/posts", api.CreateBlogPost)
			auth.PUT("/posts/:id", api.UpdateBlogPost)
			auth.DELETE("/posts/:id", api.DeleteBlogPost)

			auth.GET("/my-life", api.GetSiteConfig)
			auth.PUT("/my-life", api.UpdateSiteConfig)

			auth.GET("/intakes", api.ListIntakes)
			auth.PUT("/intakes/:id/status", api.UpdateIntakeStatus)

			auth.POST("/upload", api.UploadMedia)
			auth.POST("/link-preview", api.FetchLinkPreview)
			auth.POST("/refresh", api.RefreshCache)
		}
	}

	return r
}

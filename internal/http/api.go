package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"article-hub/internal/auth"
	"article-hub/internal/service"
)

// Services groups the domain services the HTTP layer depends on.
type Services struct {
	Users      service.UserService
	Categories service.CategoryService
	Articles   service.ArticleService
	Engagement service.EngagementService
	About      service.AboutService
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	categories service.CategoryService
	articles   service.ArticleService
	engagement service.EngagementService
	about      service.AboutService
	tokens     *auth.TokenManager
	logger     *logrus.Logger

	// maxUploadBytes caps article upload bodies; zero means unbounded.
	maxUploadBytes int64
}

func NewHandler(svc Services, tokens *auth.TokenManager, logger *logrus.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:          svc.Users,
		categories:     svc.Categories,
		articles:       svc.Articles,
		engagement:     svc.Engagement,
		about:          svc.About,
		tokens:         tokens,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.requestLogger())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/about", h.getAbout)

	authed := router.Group("/", h.requireAuth())
	{
		authed.GET("/check_session", h.checkSession)
		authed.GET("/user", h.userPanel)
		authed.GET("/all_articles", h.listAllArticles)
		authed.GET("/my_articles", h.listMyArticles)
		authed.POST("/articles/:id/like", h.toggleLike)
		authed.POST("/articles/:id/download", h.downloadArticle)
		authed.GET("/articles/:id/is_liked", h.isLiked)
		authed.GET("/user_activities", h.listActivities)
	}

	admin := authed.Group("/", requireAdmin())
	{
		admin.GET("/admin", h.adminPanel)

		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.PUT("/users/:id", h.updateUser)
		admin.DELETE("/users/:id", h.deleteUser)

		admin.GET("/categories", h.listCategories)
		admin.POST("/categories", h.createCategory)
		admin.PUT("/categories/:id", h.updateCategory)
		admin.DELETE("/categories/:id", h.deleteCategory)

		admin.GET("/articles", h.listArticles)
		admin.POST("/articles", h.limitBody(), h.createArticle)
		admin.PUT("/articles/:id", h.limitBody(), h.updateArticle)
		admin.DELETE("/articles/:id", h.deleteArticle)

		admin.POST("/about", h.updateAbout)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/havenchat/haven/internal/api/chat"
	"github.com/havenchat/haven/internal/api/middleware"
	"github.com/havenchat/haven/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(conversations *service.ConversationService, logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "service": "haven counselor api", "health": "green"})
	})

	chatHandler := chat.NewHandler(conversations)
	chatHandler.RegisterRoutes(&r.RouterGroup)

	return r
}

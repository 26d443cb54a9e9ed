package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// New wires the Gin engine with required routes and middlewares.
func New(articles *handlers.ArticleHandler, analytics *handlers.AnalyticsHandler, chat *handlers.CommandHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/articles", articles.List)
	r.POST("/articles", articles.Create)
	r.GET("/articles/:id", articles.Get)
	r.POST("/articles/:id/sell", articles.Sell)
	r.POST("/articles/:id/price", articles.Reprice)
	r.DELETE("/articles/:id", articles.Delete)

	r.GET("/analytics", analytics.Get)
	r.POST("/reports/weekly", analytics.SendWeekly)
	r.POST("/reports/export", analytics.Export)

	if chat != nil {
		r.POST("/commands", chat.Receive)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requestIDMiddleware propagates the caller's request id or assigns one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meetsum/internal/metrics"
	"github.com/polkiloo/meetsum/internal/server/http/handlers"
	"github.com/polkiloo/meetsum/internal/server/http/middleware"
)

// Transcripts above this size are rejected by the handlers' binding step.
const maxRequestBody = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MeetingFacade, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	// PDFs are already compressed.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`/pdf$`})))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	authHandler := handlers.NewAuthHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	upgradeHandler := handlers.NewUpgradeHandler(facade)
	newsHandler := handlers.NewNewsHandler(facade)
	analysisHandler := handlers.NewAnalysisHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	requireAuth := middleware.AuthRequired(facade)

	userAuth := user.Group("")
	userAuth.Use(requireAuth)
	userAuth.GET("/profile", authHandler.Profile)
	userAuth.POST("/wallet", walletHandler.Create)
	userAuth.GET("/wallet", walletHandler.Get)
	userAuth.POST("/wallet/funds", walletHandler.Fund)
	userAuth.GET("/transactions", walletHandler.Transactions)
	userAuth.POST("/upgrade", upgradeHandler.Upgrade)

	news := api.Group("/news")
	news.Use(requireAuth)
	news.GET("", newsHandler.Latest)
	news.POST("/related", newsHandler.Related)

	analyses := api.Group("/analyses")
	analyses.Use(requireAuth)
	analyses.POST("", analysisHandler.Submit)
	analyses.GET("/:id", analysisHandler.Get)
	analyses.GET("/:id/pdf", analysisHandler.PDF)

	return engine
}

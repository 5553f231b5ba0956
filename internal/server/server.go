package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/papergraph/papergraph/internal/catalog"
	"github.com/papergraph/papergraph/internal/conf"
	"github.com/papergraph/papergraph/internal/handler"
	"github.com/papergraph/papergraph/internal/maintenance"
	"github.com/papergraph/papergraph/pkg/logger"
	"github.com/papergraph/papergraph/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine  *gin.Engine
	sweeper *maintenance.Sweeper
	cfg     *conf.Config
	http    *http.Server
}

func NewServer(cfg *conf.Config) *Server {
	cat := catalog.New()

	// 预置标签
	if created := cat.Seed(cfg.SeedTags); created > 0 {
		logger.Info("预置标签完成", zap.Int("created", created))
	}

	files := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	sweeper := maintenance.NewSweeper(cat)
	if cfg.Maintenance.Enable {
		if err := sweeper.Schedule(cfg.Maintenance.Cron); err != nil {
			logger.Fatal("注册完整性巡查失败", zap.Error(err))
		}
	}

	articleHandler := handler.NewArticleHandler(cat, files)
	tagHandler := handler.NewTagHandler(cat)
	analysisHandler := handler.NewAnalysisHandler(cat)
	authorHandler := handler.NewAuthorHandler(cat)

	router := gin.Default()

	// 已上传文件的静态访问
	if cfg.Storage.BasePath != "" {
		router.Static("/static", cfg.Storage.BasePath)
	}

	api := router.Group("/api")
	{
		api.GET("/articles", articleHandler.Search)
		api.POST("/articles", articleHandler.Create)
		api.GET("/articles/:id", articleHandler.Get)
		api.PUT("/articles/:id", articleHandler.Update)
		api.DELETE("/articles/:id", articleHandler.Delete)
		api.POST("/articles/:id/stats/:field", articleHandler.IncrementStat)
		api.POST("/articles/:id/pdf", articleHandler.UploadPDF)

		api.GET("/articles/:id/tags", tagHandler.ArticleTags)
		api.POST("/articles/:id/tags", tagHandler.Attach)
		api.DELETE("/articles/:id/tags/:tagId", tagHandler.Detach)

		api.GET("/articles/authors/:authorName", authorHandler.Articles)

		api.GET("/tags", tagHandler.List)
		api.POST("/tags", tagHandler.Create)
		api.DELETE("/tags/:id", tagHandler.Delete)

		api.POST("/analyses", analysisHandler.Create)
		api.GET("/analyses/:articleId", analysisHandler.Get)

		api.POST("/maintenance/sweep", func(c *gin.Context) {
			sweeper.Run()
			c.JSON(200, gin.H{"code": 0, "message": "巡查完成", "data": sweeper.Stats()})
		})
		api.GET("/maintenance/stats", func(c *gin.Context) {
			c.JSON(200, gin.H{"code": 0, "message": "获取巡查状态成功", "data": sweeper.Stats()})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		// 防止 API 404 落到其他 handler
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"code": 1, "message": "API not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return &Server{
		engine:  router,
		sweeper: sweeper,
		cfg:     cfg,
		http:    &http.Server{Handler: router},
	}
}

func (s *Server) Run(addr string) error {
	// 启动完整性巡查
	if s.cfg.Maintenance.Enable {
		s.sweeper.Start()
	}

	// 启动 web server，Shutdown 触发的关闭不算错误
	s.http.Addr = addr
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 先停掉定时巡查并等待在途任务结束，再优雅关闭 HTTP 服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.sweeper.Stop()
	return s.http.Shutdown(ctx)
}

package gateway

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/config"
	"github.com/kitbuilder587/newsdesk/internal/metrics"
	"github.com/kitbuilder587/newsdesk/internal/newsapi"
	"github.com/kitbuilder587/newsdesk/internal/ratelimit"
)

type ArticleSearcher interface {
	Everything(ctx context.Context, req newsapi.Request) (*newsapi.Result, error)
}

type Deps struct {
	Config  *config.Config
	News    ArticleSearcher
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Limiter *ratelimit.Limiter // nil отключает лимит
}

type Server struct {
	cfg     *config.Config
	news    ArticleSearcher
	logger  *zap.Logger
	metrics *metrics.Metrics
	limiter *ratelimit.Limiter
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{
		cfg:     deps.Config,
		news:    deps.News,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		limiter: deps.Limiter,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.GET("/count", s.rateLimit(), s.handleCount)
	r.GET("/search", s.rateLimit(), s.handleSearch)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/domain"
	"github.com/kitbuilder587/newsdesk/internal/newsapi"
)

const (
	outcomeOK          = "ok"
	outcomeValidation  = "validation_error"
	outcomeConfig      = "config_error"
	outcomeUpstream    = "upstream_error"
	outcomeTransport   = "transport_error"
	outcomeRateLimited = "rate_limited"
)

// Каждый эндпоинт отвечает HTTP 200 и конвертом {ok, ...}: фронтенд ветвится
// по полю ok, а не по статус-коду.
type healthEnvelope struct {
	OK bool `json:"ok"`
}

type errorEnvelope struct {
	OK         bool        `json:"ok"`
	Error      interface{} `json:"error"`
	StatusCode int         `json:"status_code,omitempty"`
}

type countEnvelope struct {
	OK           bool   `json:"ok"`
	Q            string `json:"q"`
	From         string `json:"from"`
	To           string `json:"to"`
	TotalResults int    `json:"totalResults"`
}

type searchEnvelope struct {
	countEnvelope
	Articles []domain.ArticleSummary `json:"articles"`
}

type queryArgs struct {
	Q        string
	From     string
	To       string
	Language string
	Domains  string
}

type requestFailure struct {
	outcome string
	message string
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthEnvelope{OK: true})
}

func (s *Server) handleCount(c *gin.Context) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	args, failed := s.validateArgs(c)
	if failed != nil {
		s.reject(c, "count", failed, start)
		return
	}

	result, err := s.callUpstream(c.Request.Context(), newsapi.Request{
		Query:     args.Q,
		From:      args.From,
		To:        args.To,
		Language:  args.Language,
		Domains:   args.Domains,
		PageSize:  1,
		Page:      1,
		TitleOnly: true,
	})
	if err != nil {
		s.logger.Error("newsapi request failed", zap.String("endpoint", "count"), zap.Error(err))
		s.record("count", outcomeTransport, start)
		c.JSON(http.StatusOK, errorEnvelope{Error: err.Error()})
		return
	}
	if result.StatusCode != http.StatusOK {
		s.logger.Warn("newsapi error status", zap.String("endpoint", "count"), zap.Int("status", result.StatusCode))
		s.record("count", outcomeUpstream, start)
		c.JSON(http.StatusOK, upstreamError(result))
		return
	}

	s.record("count", outcomeOK, start)
	c.JSON(http.StatusOK, countEnvelope{
		OK:           true,
		Q:            args.Q,
		From:         args.From,
		To:           args.To,
		TotalResults: result.Body.TotalResults,
	})
}

func (s *Server) handleSearch(c *gin.Context) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	args, failed := s.validateArgs(c)
	if failed != nil {
		s.reject(c, "search", failed, start)
		return
	}

	limit := domain.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.reject(c, "search", &requestFailure{
				outcome: outcomeValidation,
				message: fmt.Sprintf("Invalid limit: %s. Expected an integer.", raw),
			}, start)
			return
		}
		limit = domain.ClampLimit(n)
	}

	result, err := s.callUpstream(c.Request.Context(), newsapi.Request{
		Query:    args.Q,
		From:     args.From,
		To:       args.To,
		Language: args.Language,
		Domains:  args.Domains,
		PageSize: limit,
		Page:     1,
	})
	if err != nil {
		s.logger.Error("newsapi request failed", zap.String("endpoint", "search"), zap.Error(err))
		s.record("search", outcomeTransport, start)
		c.JSON(http.StatusOK, errorEnvelope{Error: err.Error()})
		return
	}
	if result.StatusCode != http.StatusOK {
		s.logger.Warn("newsapi error status", zap.String("endpoint", "search"), zap.Int("status", result.StatusCode))
		s.record("search", outcomeUpstream, start)
		c.JSON(http.StatusOK, upstreamError(result))
		return
	}

	// upstream already got pageSize=limit, re-slice in case it ignored it
	raw := result.Body.Articles
	if len(raw) > limit {
		raw = raw[:limit]
	}
	articles := make([]domain.ArticleSummary, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, projectArticle(a))
	}

	s.record("search", outcomeOK, start)
	c.JSON(http.StatusOK, searchEnvelope{
		countEnvelope: countEnvelope{
			OK:           true,
			Q:            args.Q,
			From:         args.From,
			To:           args.To,
			TotalResults: result.Body.TotalResults,
		},
		Articles: articles,
	})
}

// validateArgs проверяет ключ и параметры в том порядке, на который
// завязан фронтенд: credential, q, from, to. Первая ошибка выигрывает.
func (s *Server) validateArgs(c *gin.Context) (queryArgs, *requestFailure) {
	if s.cfg.NewsAPI.APIKey == "" {
		return queryArgs{}, &requestFailure{
			outcome: outcomeConfig,
			message: "NEWSAPI_KEY is not configured. Please set it in the environment before starting the gateway.",
		}
	}

	args := queryArgs{
		Q:        c.Query("q"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Language: c.DefaultQuery("language", domain.DefaultLanguage),
		Domains:  c.Query("domains"),
	}

	if strings.TrimSpace(args.Q) == "" {
		return queryArgs{}, &requestFailure{
			outcome: outcomeValidation,
			message: "Missing required parameter: q.",
		}
	}
	if !domain.ValidDate(args.From) {
		return queryArgs{}, &requestFailure{
			outcome: outcomeValidation,
			message: fmt.Sprintf("Invalid from date format: %s. Expected YYYY-MM-DD.", args.From),
		}
	}
	if !domain.ValidDate(args.To) {
		return queryArgs{}, &requestFailure{
			outcome: outcomeValidation,
			message: fmt.Sprintf("Invalid to date format: %s. Expected YYYY-MM-DD.", args.To),
		}
	}

	return args, nil
}

// rateLimit ограждает квоту NewsAPI от болтливых клиентов. Отказ приходит
// тем же конвертом с HTTP 200, что и остальные ошибки.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			return
		}

		key := c.ClientIP()
		if !s.limiter.Allow(key) {
			seconds := int(s.limiter.RetryAfter(key).Seconds()) + 1
			endpoint := strings.TrimPrefix(c.FullPath(), "/")

			s.logger.Warn("rate limit exceeded",
				zap.String("endpoint", endpoint),
				zap.String("client", key))
			s.record(endpoint, outcomeRateLimited, time.Now())

			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusOK, errorEnvelope{
				Error: fmt.Sprintf("Rate limit exceeded. Please retry in %d seconds.", seconds),
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(s.limiter.Remaining(key)))
	}
}

func (s *Server) reject(c *gin.Context, endpoint string, failed *requestFailure, start time.Time) {
	s.logger.Debug("request rejected",
		zap.String("endpoint", endpoint),
		zap.String("reason", failed.message))
	s.record(endpoint, failed.outcome, start)
	c.JSON(http.StatusOK, errorEnvelope{Error: failed.message})
}

func (s *Server) callUpstream(ctx context.Context, req newsapi.Request) (*newsapi.Result, error) {
	start := time.Now()
	result, err := s.news.Everything(ctx, req)

	if s.metrics != nil {
		status := outcomeTransport
		if err == nil {
			status = strconv.Itoa(result.StatusCode)
		}
		s.metrics.RecordUpstreamRequest(status, time.Since(start))
	}

	return result, err
}

func (s *Server) record(endpoint, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordRequest(endpoint, outcome, time.Since(start))
}

// upstreamError passes the NewsAPI body through untouched: as nested JSON
// when it parses, otherwise as a plain string.
func upstreamError(result *newsapi.Result) errorEnvelope {
	env := errorEnvelope{StatusCode: result.StatusCode}
	if json.Valid(result.Raw) {
		env.Error = result.Raw
	} else {
		env.Error = string(result.Raw)
	}
	return env
}

func projectArticle(a newsapi.Article) domain.ArticleSummary {
	source := a.Source.Name
	if source == "" {
		source = domain.UnknownSource
	}
	return domain.ArticleSummary{
		Title:       a.Title,
		Source:      source,
		PublishedAt: a.PublishedAt,
		URL:         a.URL,
		Description: a.Description,
		Content:     a.Content,
	}
}

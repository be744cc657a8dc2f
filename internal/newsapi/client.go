package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("newsapi key is not configured")

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://newsapi.org/v2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Request - параметры запроса к /everything. TitleOnly сужает поиск до
// заголовков (searchIn=title); иначе NewsAPI ищет по заголовку и тексту.
type Request struct {
	Query     string
	From      string
	To        string
	Language  string
	Domains   string
	PageSize  int
	Page      int
	TitleOnly bool
}

type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type Article struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type Source struct {
	Name string `json:"name"`
}

// Result carries the upstream verdict without interpreting it: deciding what
// counts as success is the gateway's job. Raw keeps the body verbatim so
// upstream errors can be passed through untouched.
type Result struct {
	StatusCode int
	Body       Response
	Raw        json.RawMessage
}

func (c *Client) Everything(ctx context.Context, req Request) (*Result, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if req.Language == "" {
		req.Language = "en"
	}
	if req.PageSize == 0 {
		req.PageSize = 100
	}
	if req.Page == 0 {
		req.Page = 1
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("from", req.From)
	params.Set("to", req.To)
	params.Set("language", req.Language)
	params.Set("pageSize", strconv.Itoa(req.PageSize))
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("sortBy", "publishedAt")
	params.Set("apiKey", c.apiKey)
	if req.Domains != "" {
		params.Set("domains", req.Domains)
	}
	if req.TitleOnly {
		params.Set("searchIn", "title")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Raw:        raw,
	}

	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(raw, &result.Body); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
	}

	c.logger.Debug("newsapi everything",
		zap.Int("status", resp.StatusCode),
		zap.Int("total_results", result.Body.TotalResults),
		zap.Int("page_size", req.PageSize),
		zap.Bool("title_only", req.TitleOnly))

	return result, nil
}

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/domain"
)

var (
	ErrGatewayUnreachable = errors.New("cannot connect to gateway")
	ErrGatewayTimeout     = errors.New("gateway request timed out")
	ErrBadStatus          = errors.New("gateway returned unexpected status")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the search gateway. It never interprets ok:false replies:
// разбор конверта и показ ошибки - забота вызывающего.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(cfg.Timeout),
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetBaseURL repoints the client at another gateway instance.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
	c.http.SetBaseURL(c.baseURL)
}

// SearchReply is the superset of the /search and /count envelopes.
type SearchReply struct {
	OK           bool                    `json:"ok"`
	Q            string                  `json:"q"`
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	TotalResults int                     `json:"totalResults"`
	Articles     []domain.ArticleSummary `json:"articles"`
	Error        json.RawMessage         `json:"error"`
	StatusCode   int                     `json:"status_code"`
}

// ErrorMessage unwraps the error payload: structured {"message": ...} first,
// then a plain JSON string, then the raw text.
func (r *SearchReply) ErrorMessage() string {
	if len(r.Error) == 0 {
		return "Unknown error"
	}

	var structured struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Error, &structured); err == nil && structured.Message != "" {
		return structured.Message
	}

	var plain string
	if err := json.Unmarshal(r.Error, &plain); err == nil {
		return plain
	}

	return string(r.Error)
}

func (c *Client) Search(ctx context.Context, params domain.SearchParams) (*SearchReply, error) {
	query := map[string]string{
		"q":    params.Query,
		"from": params.From,
		"to":   params.To,
	}
	if params.Limit > 0 {
		query["limit"] = strconv.Itoa(params.Limit)
	}
	if params.Domains != "" {
		query["domains"] = params.Domains
	}
	return c.get(ctx, "/search", query)
}

func (c *Client) Count(ctx context.Context, params domain.SearchParams) (*SearchReply, error) {
	query := map[string]string{
		"q":    params.Query,
		"from": params.From,
		"to":   params.To,
	}
	if params.Domains != "" {
		query["domains"] = params.Domains
	}
	return c.get(ctx, "/count", query)
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*SearchReply, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("path", path), zap.Error(err))
		return nil, c.classifyTransportError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode())
	}

	var reply SearchReply
	if err := json.Unmarshal(resp.Body(), &reply); err != nil {
		return nil, fmt.Errorf("decode gateway reply: %w", err)
	}

	return &reply, nil
}

func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
}

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/backend"
	"github.com/kitbuilder587/newsdesk/internal/config"
	"github.com/kitbuilder587/newsdesk/internal/domain"
	"github.com/kitbuilder587/newsdesk/internal/gateway"
	"github.com/kitbuilder587/newsdesk/internal/newsapi"
)

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// stack is the whole pipeline: фейковый NewsAPI -> реальный шлюз -> реальный
// клиент, всё поверх httptest.
type stack struct {
	client       *backend.Client
	upstreamHits *int64
	lastQuery    *atomic.Value // url.Values
}

func startStack(t *testing.T, apiKey string, upstream http.HandlerFunc) *stack {
	t.Helper()

	var hits int64
	var lastQuery atomic.Value

	newsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		lastQuery.Store(r.URL.Query())
		upstream(w, r)
	}))
	t.Cleanup(newsServer.Close)

	cfg := &config.Config{
		NewsAPI: config.NewsAPIConfig{
			APIKey:  apiKey,
			BaseURL: newsServer.URL,
			Timeout: 5 * time.Second,
		},
	}

	news := newsapi.New(newsapi.Config{
		APIKey:  apiKey,
		BaseURL: newsServer.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	server := gateway.New(gateway.Deps{
		Config: cfg,
		News:   news,
		Logger: zap.NewNop(),
	})

	gatewayServer := httptest.NewServer(server.Router())
	t.Cleanup(gatewayServer.Close)

	client := backend.New(backend.Config{
		BaseURL: gatewayServer.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	return &stack{client: client, upstreamHits: &hits, lastQuery: &lastQuery}
}

func (s *stack) hits() int64 {
	return atomic.LoadInt64(s.upstreamHits)
}

func (s *stack) query() url.Values {
	v, _ := s.lastQuery.Load().(url.Values)
	return v
}

func searchParams() domain.SearchParams {
	return domain.SearchParams{
		Query: "healthcare",
		From:  "2024-01-01",
		To:    "2024-01-07",
		Limit: 5,
	}
}

func TestSearchEndToEnd(t *testing.T) {
	stack := startStack(t, "integration-key", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{
					"source": {"id": "reuters", "name": "Reuters"},
					"title": "Hospital staffing crunch",
					"description": "Wards are short on nurses.",
					"url": "https://example.com/1",
					"publishedAt": "2024-01-05T10:30:00Z",
					"content": "Body one."
				},
				{
					"source": {"id": null, "name": ""},
					"title": "Medicare debate heats up",
					"url": "https://example.com/2",
					"publishedAt": "2024-01-06T08:00:00Z"
				}
			]
		}`))
	})

	reply, err := stack.client.Search(context.Background(), searchParams())
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if !reply.OK {
		t.Fatalf("reply.OK = false, error: %s", reply.ErrorMessage())
	}
	if reply.TotalResults != 2 {
		t.Errorf("TotalResults = %d, want 2", reply.TotalResults)
	}
	if reply.Q != "healthcare" || reply.From != "2024-01-01" || reply.To != "2024-01-07" {
		t.Errorf("echo = %q %q..%q", reply.Q, reply.From, reply.To)
	}
	if len(reply.Articles) != 2 {
		t.Fatalf("len(Articles) = %d, want 2", len(reply.Articles))
	}
	if reply.Articles[0].Source != "Reuters" || reply.Articles[0].Description != "Wards are short on nurses." {
		t.Errorf("first article = %+v", reply.Articles[0])
	}
	if reply.Articles[1].Source != domain.UnknownSource {
		t.Errorf("missing source name should map to %q, got %q", domain.UnknownSource, reply.Articles[1].Source)
	}

	if stack.hits() != 1 {
		t.Errorf("upstream hits = %d, want 1", stack.hits())
	}
	q := stack.query()
	if q.Get("apiKey") != "integration-key" {
		t.Errorf("apiKey = %q", q.Get("apiKey"))
	}
	if q.Get("pageSize") != "5" {
		t.Errorf("pageSize = %q, want \"5\"", q.Get("pageSize"))
	}
	if q.Get("searchIn") != "" {
		t.Errorf("searchIn = %q, search must not restrict to titles", q.Get("searchIn"))
	}
}

func TestCountEndToEnd(t *testing.T) {
	stack := startStack(t, "integration-key", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "totalResults": 321, "articles": []}`))
	})

	reply, err := stack.client.Count(context.Background(), searchParams())
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}

	if !reply.OK {
		t.Fatalf("reply.OK = false, error: %s", reply.ErrorMessage())
	}
	if reply.TotalResults != 321 {
		t.Errorf("TotalResults = %d, want 321", reply.TotalResults)
	}
	if len(reply.Articles) != 0 {
		t.Errorf("count returned %d articles, want none", len(reply.Articles))
	}

	q := stack.query()
	if q.Get("pageSize") != "1" {
		t.Errorf("pageSize = %q, count must fetch a single article", q.Get("pageSize"))
	}
	if q.Get("searchIn") != "title" {
		t.Errorf("searchIn = %q, count must match titles only", q.Get("searchIn"))
	}
}

func TestValidationEndToEnd(t *testing.T) {
	stack := startStack(t, "integration-key", func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called on validation failure")
	})

	params := searchParams()
	params.From = "2024/01/01"

	reply, err := stack.client.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if reply.OK {
		t.Fatal("reply.OK = true, want validation failure")
	}
	want := "Invalid from date format: 2024/01/01. Expected YYYY-MM-DD."
	if got := reply.ErrorMessage(); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if stack.hits() != 0 {
		t.Errorf("upstream hits = %d, want 0", stack.hits())
	}
}

func TestUpstreamErrorEndToEnd(t *testing.T) {
	stack := startStack(t, "bad-key", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid or incorrect."}`))
	})

	reply, err := stack.client.Search(context.Background(), searchParams())
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if reply.OK {
		t.Fatal("reply.OK = true, want upstream failure passthrough")
	}
	if reply.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", reply.StatusCode)
	}
	if got := reply.ErrorMessage(); got != "Your API key is invalid or incorrect." {
		t.Errorf("error = %q", got)
	}
}

func TestMissingKeyEndToEnd(t *testing.T) {
	stack := startStack(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without credentials")
	})

	reply, err := stack.client.Count(context.Background(), searchParams())
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}

	if reply.OK {
		t.Fatal("reply.OK = true, want config failure")
	}
	want := "NEWSAPI_KEY is not configured. Please set it in the environment before starting the gateway."
	if got := reply.ErrorMessage(); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if stack.hits() != 0 {
		t.Errorf("upstream hits = %d, want 0", stack.hits())
	}
}

package serp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"keyword-engine-go/pkg/logger"
)

type httpCollector struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
	retry   *SimpleRetry
	parser  *ResponseParser
	timeout time.Duration
	log     *logger.Logger

	totalRequests  uint64
	failedRequests uint64
}

// NewHTTPCollector creates a collector backed by an external SERP data API
func NewHTTPCollector(baseURL, apiKey string) Collector {
	return NewHTTPCollectorWithRetry(baseURL, apiKey, 3, 1*time.Second)
}

// NewHTTPCollectorWithRetry creates a collector with a configurable retry mechanism
func NewHTTPCollectorWithRetry(baseURL, apiKey string, maxRetries int, retryDelay time.Duration) Collector {
	return &httpCollector{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         30 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 60 * time.Second,
		},
		retry:   NewSimpleRetry(maxRetries, retryDelay),
		parser:  NewResponseParser(),
		timeout: 30 * time.Second,
		log:     logger.GetLogger().WithField("component", "serp_collector"),
	}
}

func (c *httpCollector) Collect(ctx context.Context, keywords []string) (map[string]*SignalBundle, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords provided")
	}
	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()

	c.log.WithField("keywords_count", len(keywords)).Debug("Starting SERP collection")

	var bundles map[string]*SignalBundle
	err := c.retry.Execute(ctx, func() error {
		var doErr error
		bundles, doErr = c.doCollect(keywords)
		return doErr
	})
	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.log.WithError(err).WithField("keywords_count", len(keywords)).Error("SERP collection failed")
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"keywords_count": len(keywords),
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Debug("SERP collection completed")
	return bundles, nil
}

func (c *httpCollector) doCollect(keywords []string) (map[string]*SignalBundle, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	// Batch query: keyword=word1,word2,word3
	keywordParam := strings.Join(keywords, ",")
	var fullURL string
	if strings.Contains(c.baseURL, "?keyword=") {
		fullURL = c.baseURL + url.QueryEscape(keywordParam)
	} else {
		fullURL = c.baseURL + "?keyword=" + url.QueryEscape(keywordParam)
	}
	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("SERP request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("SERP data API returned status %d", resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return c.parser.Parse(body)
}

// Package network is the HTTP layer every extractor and source goes through.
//
// A Client adds browser headers, per-host rate limiting, retries with
// exponential backoff and a short-lived in-memory page cache on top of
// net/http.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/streamkit/config"
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/log"
	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// Options configure a Client. The zero value is a plain client with no cache,
// no retries and no rate limit.
type Options struct {
	UserAgent      string
	Timeout        time.Duration
	RateLimit      float64
	Retries        int
	RetryInterval  time.Duration
	CacheTTL       time.Duration
	TLSFingerprint bool
}

// OptionsFromConfig reads the network and extract sections of the configuration.
func OptionsFromConfig() Options {
	return Options{
		UserAgent:      viper.GetString(key.NetworkUserAgent),
		Timeout:        config.ExtractTimeout(),
		RateLimit:      viper.GetFloat64(key.NetworkRateLimit),
		Retries:        viper.GetInt(key.ExtractRetries),
		CacheTTL:       config.ExtractCacheTTL(),
		TLSFingerprint: viper.GetBool(key.ExtractTLSFingerprint),
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   string
}

// StatusError is returned by Get and Post for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

type Client struct {
	http    *http.Client
	options Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	pages *ristretto.Cache[string, string]
}

// New builds a client. A Client is safe for concurrent use.
func New(options Options) (*Client, error) {
	transport := http.RoundTripper(newTransport())
	if options.TLSFingerprint {
		transport = TLSTransport()
	}

	c := &Client{
		http:     &http.Client{Timeout: options.Timeout, Transport: transport},
		options:  options,
		limiters: make(map[string]*rate.Limiter),
	}

	if options.CacheTTL > 0 {
		pages, err := ristretto.NewCache(&ristretto.Config[string, string]{
			NumCounters: 1e4,
			MaxCost:     64 << 20,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("create page cache: %w", err)
		}
		c.pages = pages
	}

	return c, nil
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Default returns the process-wide client built from the configuration on first use.
func Default() *Client {
	defaultClientOnce.Do(func() {
		client, err := New(OptionsFromConfig())
		if err != nil {
			log.Warnf("falling back to an uncached client: %s", err)
			options := OptionsFromConfig()
			options.CacheTTL = 0
			client, _ = New(options)
		}
		defaultClient = client
	})
	return defaultClient
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Get fetches rawURL and returns its body. Successful bodies are cached when a cache TTL is set.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	cacheKey := pageKey(rawURL, headers)
	if c.pages != nil {
		if body, ok := c.pages.Get(cacheKey); ok {
			return body, nil
		}
	}

	resp, err := c.Request(ctx, http.MethodGet, rawURL, "", headers)
	if err != nil {
		return "", err
	}

	if !successful(resp.Status) {
		return "", &StatusError{Method: http.MethodGet, URL: rawURL, Status: resp.Status}
	}

	if c.pages != nil {
		c.pages.SetWithTTL(cacheKey, resp.Body, int64(len(resp.Body)), c.options.CacheTTL)
		c.pages.Wait()
	}

	return resp.Body, nil
}

// Post submits form url-encoded and returns the body. Responses are never cached.
func (c *Client) Post(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (string, error) {
	merged := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	for k, v := range headers {
		merged[k] = v
	}

	resp, err := c.Request(ctx, http.MethodPost, rawURL, form.Encode(), merged)
	if err != nil {
		return "", err
	}

	if !successful(resp.Status) {
		return "", &StatusError{Method: http.MethodPost, URL: rawURL, Status: resp.Status}
	}

	return resp.Body, nil
}

// Request performs a single logical request, retrying transport errors and 5xx
// responses. Other statuses are returned as is.
func (c *Client) Request(ctx context.Context, method, rawURL, body string, headers map[string]string) (*Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	var response *Response
	attempt := 0
	operation := func() error {
		attempt++
		if err := c.wait(ctx, parsed.Host); err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.do(ctx, method, rawURL, body, headers)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			log.With(log.Fields{"url": rawURL, "attempt": attempt}).Warnf("request failed: %s", err)
			return err
		}

		response = resp
		if resp.Status >= http.StatusInternalServerError {
			log.With(log.Fields{"url": rawURL, "attempt": attempt}).Warnf("server error %d", resp.Status)
			return &StatusError{Method: method, URL: rawURL, Status: resp.Status}
		}

		return nil
	}

	err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), uint64(max(c.options.Retries, 0))), ctx))

	var statusErr *StatusError
	if errors.As(err, &statusErr) && response != nil {
		// retries exhausted on a 5xx: callers decide what a bad status means
		return response, nil
	}
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (c *Client) newBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.options.RetryInterval > 0 {
		b.InitialInterval = c.options.RetryInterval
	}
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	return b
}

func (c *Client) do(ctx context.Context, method, rawURL, body string, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	userAgent := c.options.UserAgent
	if userAgent == "" {
		userAgent = constant.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: string(content)}, nil
}

func (c *Client) wait(ctx context.Context, host string) error {
	if c.options.RateLimit <= 0 {
		return nil
	}

	c.mu.Lock()
	limiter, ok := c.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(c.options.RateLimit), 1)
		c.limiters[host] = limiter
	}
	c.mu.Unlock()

	return limiter.Wait(ctx)
}

func successful(status int) bool {
	return status >= 200 && status < 300
}

func pageKey(rawURL string, headers map[string]string) string {
	if len(headers) == 0 {
		return rawURL
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(rawURL)
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(strings.ToLower(name))
		b.WriteString(":")
		b.WriteString(headers[name])
	}
	return b.String()
}

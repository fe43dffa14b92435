// Gateway client for making raw HTTP requests to the SkillMorph backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:3000"

// Gateway issues HTTP requests to the backend with standard headers and
// credentials and returns the raw response plus parsed body.
//
// It performs no implicit retries; GET requests are idempotent. A cookie jar
// carries the ambient refresh credential between calls, and the client
// timeout guarantees a hung request surfaces as a normal failure instead of
// blocking its caller forever.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	mu      sync.RWMutex
	limiter *rate.Limiter
	cookie  string
}

// NewGateway creates a new backend gateway. A nil client gets a cookie jar
// and a 15 second timeout.
func NewGateway(baseURL string, client *http.Client, logger *log.Logger) *Gateway {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{Jar: jar, Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Gateway{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// SetRateLimit throttles outbound requests to rps requests per second.
// A non-positive rps removes the limit.
func (g *Gateway) SetRateLimit(rps float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if rps <= 0 {
		g.limiter = nil
		return
	}
	g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
}

// SetAmbientCookie attaches a raw Cookie header to every request, standing
// in for the browser's cookie store when credentials were imported from a
// cURL command.
func (g *Gateway) SetAmbientCookie(cookie string) {
	g.mu.Lock()
	g.cookie = cookie
	g.mu.Unlock()
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the response status is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrField returns the "error" field of a JSON object body, or "" when absent.
func (r *APIResponse) ErrField() string {
	obj, ok := r.JSONData.(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := obj["error"].(string)
	return msg
}

// Get performs a GET request to the specified path. An empty token sends no
// Authorization header.
func (g *Gateway) Get(ctx context.Context, path, token string) (*APIResponse, error) {
	return g.do(ctx, http.MethodGet, path, token, nil)
}

// Post performs a POST request with the given JSON data.
func (g *Gateway) Post(ctx context.Context, path, token string, data []byte) (*APIResponse, error) {
	return g.do(ctx, http.MethodPost, path, token, data)
}

// Put performs a PUT request with the given JSON data.
func (g *Gateway) Put(ctx context.Context, path, token string, data []byte) (*APIResponse, error) {
	return g.do(ctx, http.MethodPut, path, token, data)
}

// Delete performs a DELETE request to the specified path.
func (g *Gateway) Delete(ctx context.Context, path, token string) (*APIResponse, error) {
	return g.do(ctx, http.MethodDelete, path, token, nil)
}

func (g *Gateway) do(ctx context.Context, method, path, token string, data []byte) (*APIResponse, error) {
	g.mu.RLock()
	limiter := g.limiter
	g.mu.RUnlock()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	fullURL := g.baseURL + path

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.mu.RLock()
	if g.cookie != "" {
		req.Header.Set("Cookie", g.cookie)
	}
	g.mu.RUnlock()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

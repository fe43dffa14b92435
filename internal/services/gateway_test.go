package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	tu "github.com/ebaadraheem/skillmorph-cli/internal/testing"
)

func TestGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			gateway := NewGateway("http://example.com", customClient, nil)

			if gateway.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", gateway.baseURL)
			}
			if gateway.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			gateway := NewGateway("", nil, nil)

			if gateway.baseURL != "http://localhost:3000" {
				t.Errorf("expected default baseURL, got %s", gateway.baseURL)
			}
		})

		t.Run("With Nil Client", func(t *testing.T) {
			gateway := NewGateway("http://example.com", nil, nil)

			if gateway.httpClient.Jar == nil {
				t.Error("expected default client to carry a cookie jar")
			}
			if gateway.httpClient.Timeout == 0 {
				t.Error("expected default client to have a timeout")
			}
		})
	})

	t.Run("Request Headers", func(t *testing.T) {
		t.Run("Bearer Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("expected bearer header, got %q", got)
				}
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("expected json content type, got %q", got)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			if _, err := gateway.Get(ctx, "/test", "tok"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Empty Token Sends No Authorization", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "" {
					t.Errorf("expected no authorization header, got %q", got)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			if _, err := gateway.Get(ctx, "/test", ""); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Ambient Cookie", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Cookie"); got != "refreshToken=abc" {
					t.Errorf("expected ambient cookie, got %q", got)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			gateway.SetAmbientCookie("refreshToken=abc")
			if _, err := gateway.Post(ctx, "/auth/refresh", "", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Response Parsing", func(t *testing.T) {
		t.Run("JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			resp, err := gateway.Get(ctx, "/test", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.IsJSON {
				t.Error("expected IsJSON")
			}
			if resp.ErrField() != "nope" {
				t.Errorf("expected error field 'nope', got %q", resp.ErrField())
			}
		})

		t.Run("Non-JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text"))
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			resp, err := gateway.Get(ctx, "/test", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected IsJSON false")
			}
			if resp.ErrField() != "" {
				t.Errorf("expected empty error field, got %q", resp.ErrField())
			}
		})

		t.Run("OK Range", func(t *testing.T) {
			for status, want := range map[int]bool{200: true, 204: true, 299: true, 301: false, 400: false, 500: false} {
				resp := &APIResponse{StatusCode: status}
				if resp.OK() != want {
					t.Errorf("status %d: expected OK %v", status, want)
				}
			}
		})
	})

	t.Run("Transport Failure", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(nil, errors.New("connection refused"))
		gateway := NewGateway("http://example.com", &http.Client{Transport: rt}, nil)

		_, err := gateway.Get(ctx, "/test", "")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, shared.ErrNetworkFailure) {
			t.Errorf("expected network failure wrap, got %v", err)
		}
	})

	t.Run("Body Read Failure", func(t *testing.T) {
		rt := tu.NewMockRoundTripper(&http.Response{StatusCode: 200, Body: &tu.FCloser{}}, nil)
		gateway := NewGateway("http://example.com", &http.Client{Transport: rt}, nil)

		if _, err := gateway.Get(ctx, "/test", ""); err == nil {
			t.Fatal("expected error reading body")
		}
	})

	t.Run("Rate Limit", func(t *testing.T) {
		t.Run("Install And Remove", func(t *testing.T) {
			gateway := NewGateway("http://example.com", nil, nil)

			gateway.SetRateLimit(5)
			if gateway.limiter == nil {
				t.Error("expected limiter installed")
			}

			gateway.SetRateLimit(0)
			if gateway.limiter != nil {
				t.Error("expected limiter removed")
			}
		})

		t.Run("Reconfigure During Requests", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)

			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 5; j++ {
						if _, err := gateway.Get(ctx, "/test", ""); err != nil {
							t.Errorf("expected no error, got %v", err)
							return
						}
					}
				}()
			}

			gateway.SetRateLimit(1000)
			gateway.SetRateLimit(0)
			wg.Wait()
		})
	})
}

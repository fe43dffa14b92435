package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	tu "github.com/ebaadraheem/skillmorph-cli/internal/testing"
)

func TestSessionService(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		gateway := NewGateway("http://example.com", nil, nil)
		session := NewSessionService(gateway, nil, nil)

		if session.State() != Anonymous {
			t.Errorf("expected initial state anonymous, got %s", session.State())
		}
		if session.CurrentUser() != nil {
			t.Error("expected no current user")
		}
		if session.UserID() != "not_authenticated" {
			t.Errorf("expected anonymous user id, got %s", session.UserID())
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		t.Run("Valid Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user/info" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer valid-token" {
					t.Errorf("expected bearer header, got %q", got)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"user_id":  "u-1",
					"username": "dara",
					"email":    "dara@example.com",
					"role":     "student",
				})
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			store := &tu.MemoryCredentials{}
			session := NewSessionService(gateway, store, nil)

			session.Authenticate(ctx, "valid-token")

			if session.State() != Authenticated {
				t.Fatalf("expected authenticated, got %s", session.State())
			}
			if session.CurrentUser().DisplayName != "dara" {
				t.Errorf("expected user dara, got %s", session.CurrentUser().DisplayName)
			}
			if session.Token() != "valid-token" {
				t.Errorf("expected token preserved, got %q", session.Token())
			}
			if session.UserID() != "u-1" {
				t.Errorf("expected user id u-1, got %s", session.UserID())
			}
		})

		t.Run("Rejected Token Refreshed Exactly Once", func(t *testing.T) {
			var infoCalls, refreshCalls atomic.Int64

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/user/info":
					infoCalls.Add(1)
					if r.Header.Get("Authorization") == "Bearer fresh-token" {
						json.NewEncoder(w).Encode(map[string]string{"user_id": "u-1", "username": "dara", "role": "student"})
						return
					}
					// The backend flags expiry in the payload, status 200.
					json.NewEncoder(w).Encode(map[string]string{"error": "jwt expired"})
				case "/auth/refresh":
					refreshCalls.Add(1)
					json.NewEncoder(w).Encode(map[string]string{"Token": "fresh-token"})
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
				}
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			store := &tu.MemoryCredentials{}
			session := NewSessionService(gateway, store, nil)

			session.Authenticate(ctx, "stale-token")

			if session.State() != Authenticated {
				t.Fatalf("expected authenticated after refresh, got %s", session.State())
			}
			if session.Token() != "fresh-token" {
				t.Errorf("expected fresh token, got %q", session.Token())
			}
			if got := refreshCalls.Load(); got != 1 {
				t.Errorf("expected exactly 1 refresh call, got %d", got)
			}
			if got := infoCalls.Load(); got != 2 {
				t.Errorf("expected exactly 2 identity calls, got %d", got)
			}
			if store.Stored() != "fresh-token" {
				t.Errorf("expected refreshed token persisted, got %q", store.Stored())
			}
		})

		t.Run("Refresh Failure Clears Session", func(t *testing.T) {
			var refreshCalls atomic.Int64

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/user/info":
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
				case "/auth/refresh":
					refreshCalls.Add(1)
					w.WriteHeader(http.StatusUnauthorized)
					json.NewEncoder(w).Encode(map[string]string{"error": "no refresh cookie"})
				}
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			store := &tu.MemoryCredentials{}
			store.SetToken("stale-token")
			session := NewSessionService(gateway, store, nil)

			session.Authenticate(ctx, "stale-token")

			if session.State() != Anonymous {
				t.Fatalf("expected anonymous after failed refresh, got %s", session.State())
			}
			if got := refreshCalls.Load(); got != 1 {
				t.Errorf("expected exactly 1 refresh call, got %d", got)
			}
			// The stored token is not erased: the next run re-validates it
			// and the backend remains the authority.
			if store.Stored() != "stale-token" {
				t.Errorf("expected stored token untouched, got %q", store.Stored())
			}
		})

		t.Run("Retry Failure After Refresh Clears Session", func(t *testing.T) {
			var infoCalls, refreshCalls atomic.Int64

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/user/info":
					infoCalls.Add(1)
					json.NewEncoder(w).Encode(map[string]string{"error": "jwt expired"})
				case "/auth/refresh":
					refreshCalls.Add(1)
					json.NewEncoder(w).Encode(map[string]string{"Token": "fresh-token"})
				}
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			session := NewSessionService(gateway, &tu.MemoryCredentials{}, nil)

			session.Authenticate(ctx, "stale-token")

			if session.State() != Anonymous {
				t.Fatalf("expected anonymous, got %s", session.State())
			}
			if got := refreshCalls.Load(); got != 1 {
				t.Errorf("expected exactly 1 refresh call, got %d", got)
			}
			if got := infoCalls.Load(); got != 2 {
				t.Errorf("expected exactly 2 identity calls, got %d", got)
			}
		})

		t.Run("Transport Failure Does Not Refresh", func(t *testing.T) {
			rt := tu.NewScriptedRoundTripper().Queue(nil, http.ErrHandlerTimeout)
			client := &http.Client{Transport: rt}
			gateway := NewGateway("http://example.com", client, nil)
			session := NewSessionService(gateway, &tu.MemoryCredentials{}, nil)

			session.Authenticate(ctx, "some-token")

			if session.State() != Anonymous {
				t.Fatalf("expected anonymous after transport failure, got %s", session.State())
			}
			if len(rt.Requests) != 1 {
				t.Fatalf("expected exactly 1 request, got %d", len(rt.Requests))
			}
			if rt.Requests[0].URL.Path != "/user/info" {
				t.Errorf("expected only the identity call, got %s", rt.Requests[0].URL.Path)
			}
		})

		t.Run("Missing Refresh Token Field", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				switch r.URL.Path {
				case "/user/info":
					json.NewEncoder(w).Encode(map[string]string{"error": "jwt expired"})
				case "/auth/refresh":
					json.NewEncoder(w).Encode(map[string]string{})
				}
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			session := NewSessionService(gateway, nil, nil)

			session.Authenticate(ctx, "stale-token")

			if session.State() != Anonymous {
				t.Errorf("expected anonymous when refresh returns no token, got %s", session.State())
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		t.Run("Clears Store And Calls Backend", func(t *testing.T) {
			var logoutCalls atomic.Int64
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/auth/logout" && r.Method == http.MethodPost {
					logoutCalls.Add(1)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			gateway := NewGateway(server.URL, nil, nil)
			store := &tu.MemoryCredentials{}
			store.SetToken("a-token")
			session := NewSessionService(gateway, store, nil)
			session.SetIdentity(nil, "a-token")

			session.Logout(ctx)

			if session.State() != Anonymous {
				t.Errorf("expected anonymous after logout, got %s", session.State())
			}
			if store.Stored() != "" {
				t.Errorf("expected store cleared, got %q", store.Stored())
			}
			if logoutCalls.Load() != 1 {
				t.Errorf("expected 1 logout call, got %d", logoutCalls.Load())
			}
		})

		t.Run("Clears Locally When Backend Unreachable", func(t *testing.T) {
			rt := tu.NewScriptedRoundTripper().Queue(nil, http.ErrHandlerTimeout)
			gateway := NewGateway("http://example.com", &http.Client{Transport: rt}, nil)
			store := &tu.MemoryCredentials{}
			store.SetToken("a-token")
			session := NewSessionService(gateway, store, nil)
			session.SetIdentity(nil, "a-token")

			session.Logout(ctx)

			if session.State() != Anonymous {
				t.Errorf("expected anonymous, got %s", session.State())
			}
			if store.Stored() != "" {
				t.Errorf("expected store cleared, got %q", store.Stored())
			}
		})
	})

	t.Run("State String", func(t *testing.T) {
		cases := map[SessionState]string{
			Anonymous:      "anonymous",
			Authenticating: "authenticating",
			Authenticated:  "authenticated",
			Refreshing:     "refreshing",
		}
		for state, want := range cases {
			if got := state.String(); got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		}
	})
}

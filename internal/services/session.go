// Session manager owning the authenticated-identity state machine.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// SessionState enumerates the session machine's states.
type SessionState int

const (
	Anonymous SessionState = iota
	Authenticating
	Authenticated
	Refreshing
)

func (s SessionState) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// CredentialStore persists the single access-token string across runs.
// An absent token reads as "" with no error.
type CredentialStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// SessionService is the single source of truth for the current user.
//
// Identity and token are set and cleared together: a validated token is the
// only thing that can carry an identity, and any terminal failure clears
// both. Mutation happens only through [SessionService.Authenticate],
// [SessionService.SetIdentity] and [SessionService.Logout]; concurrent
// Authenticate calls are last-write-wins.
type SessionService struct {
	gateway *Gateway
	store   CredentialStore
	logger  *log.Logger

	state sessionSnapshot
}

type sessionSnapshot struct {
	state SessionState
	user  *models.User
	token string
}

// NewSessionService creates a session manager in the [Anonymous] state.
func NewSessionService(gateway *Gateway, store CredentialStore, logger *log.Logger) *SessionService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SessionService{
		gateway: gateway,
		store:   store,
		logger:  logger,
	}
}

// Authenticate resolves the caller's identity from a candidate access token.
//
// It never returns an error: every failure path terminates in a cleared
// session, and callers observe the outcome through [SessionService.State]
// and [SessionService.CurrentUser]. If the identity endpoint reports an
// application-level error the refresh protocol runs exactly once, the new
// token is persisted, and the identity call is retried exactly once. A
// transport-level failure clears the session with no retry.
func (s *SessionService) Authenticate(ctx context.Context, token string) {
	s.transition(Authenticating)

	user, err := s.fetchIdentity(ctx, token)
	if err == nil {
		s.establish(user, token)
		return
	}

	if !errors.Is(err, shared.ErrUnauthorized) {
		s.clear("identity call failed", err)
		return
	}

	s.logger.Info("access token rejected, attempting refresh")
	s.transition(Refreshing)

	newToken, err := s.refresh(ctx)
	if err != nil {
		s.clear("refresh failed, interactive login required", err)
		return
	}

	if s.store != nil {
		if err := s.store.SetToken(newToken); err != nil {
			s.logger.Warn("failed to persist refreshed token", "error", err)
		}
	}

	user, err = s.fetchIdentity(ctx, newToken)
	if err != nil {
		s.clear("identity retry failed after refresh", err)
		return
	}

	s.establish(user, newToken)
}

// Logout clears the credential store, asks the backend to invalidate the
// refresh credential (best-effort), and clears the session unconditionally.
func (s *SessionService) Logout(ctx context.Context) {
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			s.logger.Warn("failed to clear stored token", "error", err)
		}
	}

	if _, err := s.gateway.Post(ctx, "/auth/logout", "", nil); err != nil {
		s.logger.Warn("logout request failed, clearing local state anyway", "error", err)
	}

	s.state = sessionSnapshot{state: Anonymous}
	s.logger.Info("logged out")
}

// SetIdentity installs a known-fresh identity and token directly, bypassing
// the validate/refresh path. Used right after a login response.
func (s *SessionService) SetIdentity(user *models.User, token string) {
	s.state = sessionSnapshot{state: Authenticated, user: user, token: token}
}

// State returns the current session state.
func (s *SessionService) State() SessionState {
	return s.state.state
}

// CurrentUser returns the authenticated identity, or nil when anonymous.
func (s *SessionService) CurrentUser() *models.User {
	return s.state.user
}

// Token returns the access token last proven valid, or "".
func (s *SessionService) Token() string {
	return s.state.token
}

// UserID returns the current user id, or the anonymous sentinel the catalog
// endpoint expects.
func (s *SessionService) UserID() string {
	if s.state.user == nil {
		return models.AnonymousUserID
	}
	return s.state.user.ID
}

func (s *SessionService) transition(next SessionState) {
	s.state.state = next
}

func (s *SessionService) establish(user *models.User, token string) {
	s.state = sessionSnapshot{state: Authenticated, user: user, token: token}
	s.logger.Info("session established", "user", user.DisplayName, "role", user.Role)
}

func (s *SessionService) clear(reason string, err error) {
	s.state = sessionSnapshot{state: Anonymous}
	s.logger.Warn(reason, "error", err)
}

// fetchIdentity calls the identity endpoint with the candidate token.
//
// An application-level error in the body is reported as
// [shared.ErrUnauthorized] regardless of status code, matching the backend's
// habit of flagging expiry in the payload. Transport failures come back as
// [shared.ErrNetworkFailure] from the gateway and are never retried here.
func (s *SessionService) fetchIdentity(ctx context.Context, token string) (*models.User, error) {
	resp, err := s.gateway.Get(ctx, "/user/info", token)
	if err != nil {
		return nil, err
	}

	if msg := resp.ErrField(); msg != "" || !resp.OK() {
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrUnauthorized, msg)
	}

	var user models.User
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode identity: %v", shared.ErrAPIRequest, err)
	}

	return &user, nil
}

// refresh mints a new access token from the ambient refresh credential.
// Called at most once per Authenticate.
func (s *SessionService) refresh(ctx context.Context) (string, error) {
	resp, err := s.gateway.Post(ctx, "/auth/refresh", "", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	var result models.RefreshResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode refresh response: %v", shared.ErrRefreshFailed, err)
	}

	if !resp.OK() || result.Token == "" {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", shared.ErrRefreshFailed, msg)
	}

	return result.Token, nil
}

// Package services implements the client-side core against the SkillMorph
// backend: the raw HTTP gateway, the session lifecycle, and the paginated
// catalog synchronizer.
//
// # Gateway
//
// [Gateway] is a thin wrapper issuing requests with standard headers and
// credentials, returning the raw response plus parsed body as an
// [APIResponse]. It never retries on its own; its per-request timeout and
// explicit [shared.ErrNetworkFailure] wrapping are what the stateful
// services above it rely on.
//
// # Session lifecycle
//
// [SessionService] owns the authenticated identity as a small state
// machine ([Anonymous], [Authenticating], [Authenticated], [Refreshing]).
// [SessionService.Authenticate] validates a candidate token against
// /user/info and, when the backend flags it expired, runs the refresh
// protocol exactly once: mint a new token from the ambient cookie
// credential, persist it to the [CredentialStore], retry the identity call
// once. Every failure path lands back in [Anonymous]; callers observe state,
// never errors.
//
// # Catalog synchronization
//
// [CatalogService] drives the incrementally-loaded, search-invalidated
// course list. Its fetching guard serializes page fetches, ids are
// de-duplicated across pages, and a generation tag ties every in-flight
// fetch to the (user context, query) pair it was issued for so results that
// arrive after a reset are discarded, not merged.
//
// # Routine surface
//
// [AccountService] covers the stateless request/response endpoints (auth
// forms, enrolled and instructor course management, lecture videos,
// payment dashboards, checkout initialization).
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrUnauthorized] : token rejected, refresh path applies
//   - [shared.ErrRefreshFailed] : refresh credential invalid, re-login needed
//   - [shared.ErrNetworkFailure] : no response, terminal for that call
//   - [shared.ErrValidation] : malformed request, surfaced without retry
//   - [shared.ErrAPIRequest] : any other non-success response
package services

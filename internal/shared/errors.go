package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed    = fmt.Errorf("authentication failed")
	ErrUnauthorized  = fmt.Errorf("access token rejected")
	ErrRefreshFailed = fmt.Errorf("token refresh failed")
	ErrNotLoggedIn   = fmt.Errorf("not logged in")

	// API and transport errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrNetworkFailure = fmt.Errorf("no response from server")
	ErrValidation     = fmt.Errorf("request rejected as invalid")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

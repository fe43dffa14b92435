// Utilities for parsing cURL commands copied from browser DevTools.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlCredentials represents credentials extracted from a cURL command:
// the bearer access token from the Authorization header and the raw
// Cookie header carrying the refresh credential.
type CurlCredentials struct {
	AccessToken string
	Cookie      string
}

var (
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlFile reads a .sh file containing a cURL command and extracts credentials.
func ParseCurlFile(filepath string) (*CurlCredentials, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the bearer
// token and cookie header, if present.
func ParseCurlCommand(data []byte) (*CurlCredentials, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	creds := &CurlCredentials{}

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		parts := strings.SplitN(headerLine, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "authorization":
			creds.AccessToken = strings.TrimSpace(strings.TrimPrefix(value, "Bearer"))
		case "cookie":
			creds.Cookie = value
		}
	}

	// -b takes precedence over a Cookie header
	if cookieMatch := curlCookieRegex.FindStringSubmatch(curlCmd); len(cookieMatch) > 1 {
		if cookieMatch[1] != "" {
			creds.Cookie = cookieMatch[1]
		} else if cookieMatch[2] != "" {
			creds.Cookie = cookieMatch[2]
		}
	}

	if creds.AccessToken == "" && creds.Cookie == "" {
		return nil, fmt.Errorf("%w: no Authorization or Cookie header in curl command", ErrMissingCredentials)
	}

	return creds, nil
}

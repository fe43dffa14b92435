// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
)

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// ScriptedRoundTripper returns queued responses in order and records every
// request it sees, so tests can assert on exact request counts and paths.
type ScriptedRoundTripper struct {
	mu        sync.Mutex
	responses []*http.Response
	errs      []error
	Requests  []*http.Request
}

func NewScriptedRoundTripper() *ScriptedRoundTripper {
	return &ScriptedRoundTripper{}
}

// Queue appends a response (or error) to the script.
func (s *ScriptedRoundTripper) Queue(r *http.Response, e error) *ScriptedRoundTripper {
	s.responses = append(s.responses, r)
	s.errs = append(s.errs, e)
	return s
}

func (s *ScriptedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, req)
	if len(s.responses) == 0 {
		return nil, errors.New("no scripted response left")
	}

	r, e := s.responses[0], s.errs[0]
	s.responses = s.responses[1:]
	s.errs = s.errs[1:]
	return r, e
}

// JSONResponse builds an *http.Response with a JSON body for round trippers.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// MemoryCredentials is an in-memory credential store with error injection.
type MemoryCredentials struct {
	mu       sync.Mutex
	token    string
	TokenErr error
	SetErr   error
	ClearErr error
	Sets     int
	Clears   int
}

func (m *MemoryCredentials) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.TokenErr
}

func (m *MemoryCredentials) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.token = token
	m.Sets++
	return nil
}

func (m *MemoryCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	m.Clears++
	return nil
}

// Stored returns the current token without the error injection path.
func (m *MemoryCredentials) Stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

package gate

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxDrainBytes bounds how much of a probe response body is read before closing.
const maxDrainBytes = 64 << 10

// Prober performs a single reachability check against a target.
// A nil error means the target is reachable.
type Prober interface {
	Check(ctx context.Context, target string) error
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, target string) error

// Check calls f(ctx, target).
func (f ProberFunc) Check(ctx context.Context, target string) error {
	return f(ctx, target)
}

// HTTPProbeOptions configures an HTTPProbe.
type HTTPProbeOptions struct {
	Method   string        // defaults to GET
	Timeout  time.Duration // 0 leaves the transport default in place
	Expect   StatusMatcher // zero value accepts any response
	Insecure bool          // skip TLS verification
}

// HTTPProbe checks a target by issuing an HTTP request. The response body is
// discarded without inspection.
type HTTPProbe struct {
	client  *http.Client
	method  string
	timeout time.Duration
	expect  StatusMatcher
}

// NewHTTPProbe creates a new HTTPProbe.
func NewHTTPProbe(opts HTTPProbeOptions) *HTTPProbe {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &HTTPProbe{
		client: &http.Client{
			Transport: transport,
			// Redirect targets are not probed; the redirect response itself counts.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		method:  method,
		timeout: opts.Timeout,
		expect:  opts.Expect,
	}
}

// Check issues one request against target.
func (p *HTTPProbe) Check(ctx context.Context, target string) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, p.method, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if !p.expect.Match(resp.StatusCode) {
		return fmt.Errorf("%w: got %d, want %s", ErrUnexpectedStatus, resp.StatusCode, p.expect)
	}
	return nil
}

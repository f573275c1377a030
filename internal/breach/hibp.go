package breach

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Defaults for the Pwned Passwords range API.
const (
	// DefaultBaseURL is the Pwned Passwords API root.
	DefaultBaseURL = "https://api.pwnedpasswords.com"

	// DefaultUserAgent identifies the client. The API rejects requests
	// without a User-Agent.
	DefaultUserAgent = "rpg-cli"

	// DefaultTimeout bounds a single range request. A timeout is reported
	// as LookupFailed.
	DefaultTimeout = 5 * time.Second

	// apiVersion is sent in the api-version header.
	apiVersion = "2"

	// maxRangeBodySize caps the response body. A padded range response is
	// around 40KB, so 2MB leaves ample headroom. Larger bodies fail the lookup.
	maxRangeBodySize = 2 * 1024 * 1024
)

// HIBPChecker queries the Pwned Passwords range API over HTTP.
type HIBPChecker struct {
	// client performs the range requests. It may route through Tor.
	client *http.Client

	// baseURL is the API root without trailing slash.
	baseURL string

	// userAgent is sent with every request.
	userAgent string

	// padding asks the service to pad responses with zero-count rows so
	// response size does not reveal the prefix bucket.
	padding bool

	// mode selects the SHA-1 or NTLM corpus.
	mode HashMode

	logger *slog.Logger
}

// Option configures a HIBPChecker.
type Option func(*HIBPChecker)

// WithHTTPClient sets the HTTP client used for lookups.
// The client's Timeout should be set; NewHIBPChecker does not override it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HIBPChecker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout sets the timeout of the checker's HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HIBPChecker) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithBaseURL overrides the API root, e.g. for a mirror or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *HIBPChecker) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HIBPChecker) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithPadding enables the Add-Padding request header.
func WithPadding(enabled bool) Option {
	return func(c *HIBPChecker) {
		c.padding = enabled
	}
}

// WithHashMode selects the SHA-1 or NTLM corpus.
func WithHashMode(mode HashMode) Option {
	return func(c *HIBPChecker) {
		c.mode = mode
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HIBPChecker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHIBPChecker creates a checker for the public Pwned Passwords API.
func NewHIBPChecker(opts ...Option) *HIBPChecker {
	c := &HIBPChecker{
		client:    &http.Client{Timeout: DefaultTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		mode:      HashSHA1,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check looks password up in the corpus. It performs exactly one request.
func (c *HIBPChecker) Check(ctx context.Context, password string) Verdict {
	digest, err := Hash(password, c.mode)
	if err != nil {
		return Verdict{Result: LookupFailed, Err: err}
	}
	prefix, suffix := SplitHash(digest)

	body, err := c.fetchRange(ctx, prefix)
	if err != nil {
		c.logger.Debug("breach lookup failed", "prefix", prefix, "error", err)
		return Verdict{Result: LookupFailed, Err: err}
	}
	defer body.Close()

	occurrences, err := scanRange(body, suffix)
	if err != nil {
		c.logger.Debug("breach lookup response unreadable", "prefix", prefix, "error", err)
		return Verdict{Result: LookupFailed, Err: err}
	}

	if occurrences > 0 {
		c.logger.Debug("candidate found in breach corpus", "prefix", prefix, "occurrences", occurrences)
		return Verdict{Result: Leaked, Occurrences: occurrences}
	}

	c.logger.Debug("candidate not found in breach corpus", "prefix", prefix)
	return Verdict{Result: Safe}
}

// rangeURL builds the request URL for prefix.
func (c *HIBPChecker) rangeURL(prefix string) string {
	u := c.baseURL + "/range/" + prefix
	if c.mode == HashNTLM {
		u += "?mode=ntlm"
	}
	return u
}

// fetchRange performs the GET request and returns the response body.
// The caller must close the returned body.
func (c *HIBPChecker) fetchRange(ctx context.Context, prefix string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rangeURL(prefix), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build range request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("api-version", apiVersion)
	if c.padding {
		req.Header.Set("Add-Padding", "true")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("range request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRangeBodySize)) //nolint:errcheck // draining only
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return struct {
		io.Reader
		io.Closer
	}{newCappedReader(resp.Body, maxRangeBodySize), resp.Body}, nil
}

// cappedReader fails with ErrResponseTooLarge once more than limit bytes
// have been read, instead of ending the body early with io.EOF.
type cappedReader struct {
	r     io.Reader
	read  int64
	limit int64
}

func newCappedReader(r io.Reader, limit int64) *cappedReader {
	return &cappedReader{r: io.LimitReader(r, limit+1), limit: limit}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.read > c.limit {
		return n, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.limit)
	}
	return n, err
}

// scanRange returns the occurrence count of suffix in a range response,
// or 0 if it is absent. Suffixes are compared case-insensitively and
// zero-count padding rows never match.
func scanRange(r io.Reader, suffix string) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		hashPart, countPart, _ := strings.Cut(line, ":")
		if !strings.EqualFold(hashPart, suffix) {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(countPart))
		if err != nil {
			// A matching suffix with an unreadable count still means leaked.
			return 1, nil
		}
		return count, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read range response: %w", err)
	}
	return 0, nil
}

// Package http provides the browser-identity HTTP fetcher used by the
// local extraction tiers. It fetches static HTML only; JavaScript-rendered
// sources go through the remote rendering tier instead.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/veritext/veritext"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. The
// lightweight tier is the cheap one; anything slower than this belongs to
// the remote rendering tier.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is a realistic desktop Chrome identity. Plenty of
// publishers serve reduced or blocked pages to obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// maxBodySize caps how much of a response is read. Articles are small;
// anything larger is not an article.
const maxBodySize = 10 << 20

// Ensure Fetcher implements veritext.Fetcher at compile time.
var _ veritext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents with a realistic browser header set.
// The underlying client pools connections and is shared across requests;
// the fetcher holds no per-request state.
//
// Compression is advertised only for algorithms the runtime can decode:
// the transport's transparent gzip handling is used as-is and no other
// algorithm is offered, because advertising an undecodable encoding is
// exactly how payloads arrive corrupt.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	insecureTLS bool
	forceUTF8   bool
	compression bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser identity.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithInsecureTLS disables certificate verification. Reserved for the one
// publisher profile whose TLS stack cannot complete a verified handshake;
// never applied to the shared default fetcher.
func WithInsecureTLS() Option {
	return func(f *Fetcher) {
		f.insecureTLS = true
	}
}

// WithForcedUTF8 bypasses declared-charset decoding and treats response
// bodies as UTF-8 bytes, for publishers whose charset declaration is wrong.
func WithForcedUTF8() Option {
	return func(f *Fetcher) {
		f.forceUTF8 = true
	}
}

// WithoutCompression disables compressed transfer entirely, requesting
// identity encoding. The capability gate for runtimes that cannot decode
// what would otherwise be advertised.
func WithoutCompression() Option {
	return func(f *Fetcher) {
		f.compression = false
	}
}

// NewFetcher creates a new browser-identity Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		compression: true,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = !f.compression
	if f.insecureTLS {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS10,
		}
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch retrieves the document at the given URL. Non-2xx responses and
// non-HTML content types are returned as application errors so the tier
// can fail without parsing anything.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*veritext.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, veritext.Errorf(veritext.EINVALID, "invalid URL %q: %v", url, err)
	}
	f.setBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, veritext.Errorf(veritext.ENETWORK, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, veritext.Errorf(veritext.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, veritext.Errorf(veritext.EUNSUPPORTED, "unsupported content type: %s", contentType)
	}

	body, err := f.readBody(resp.Body, contentType)
	if err != nil {
		return nil, veritext.Errorf(veritext.ENETWORK, "read body from %s: %v", url, err)
	}

	return &veritext.FetchResponse{
		Body:        body,
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// Close releases resources. The pooled transport requires no explicit
// cleanup beyond closing idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// setBrowserHeaders applies the realistic browser header set. Accept-Encoding
// is deliberately left to the transport so gzip is negotiated only when it
// will be transparently decoded.
func (f *Fetcher) setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")
	if !f.compression {
		req.Header.Set("Accept-Encoding", "identity")
	}
}

// readBody reads the response body, decoding it to UTF-8 per the declared
// charset unless the fetcher was built with WithForcedUTF8.
func (f *Fetcher) readBody(body io.Reader, contentType string) ([]byte, error) {
	limited := io.LimitReader(body, maxBodySize)
	if f.forceUTF8 {
		return io.ReadAll(limited)
	}
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(decoded)
}

// isHTMLContentType reports whether the Content-Type header denotes an
// HTML document. An absent header is given the benefit of the doubt.
func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}

// Package pagespeed measures simple load-performance signals with a
// plain timed HTTP fetch and scores them. The fetch presents a Chrome
// TLS fingerprint so bot-gated sites return the same document a real
// visitor gets.
package pagespeed

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	tls "github.com/refraction-networking/utls"
	"golang.org/x/net/html"
)

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Computed once at init time and reused for every
// connection. h2 is stripped because Go's http.Transport cannot frame
// HTTP/2 over a utls connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Collector performs the timed fetch. Safe for concurrent use.
type Collector struct {
	client *http.Client
}

// NewCollector builds a Collector with the Chrome TLS fingerprint
// transport. The timeout bounds one whole fetch, headers through body.
func NewCollector(timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("pagespeed: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}
	return &Collector{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// Timings are the raw load-performance measurements of one fetch.
type Timings struct {
	TTFB        time.Duration `json:"ttfb"`
	Total       time.Duration `json:"total"`
	HTMLBytes   int           `json:"html_bytes"`
	StatusCode  int           `json:"status_code"`
	DOMNodes    int           `json:"dom_nodes"`
	Scripts     int           `json:"scripts"`
	Stylesheets int           `json:"stylesheets"`
}

// Collect performs one timed GET. TTFB is measured to response headers,
// Total to the last body byte. The body is capped at 10 MB.
func (c *Collector) Collect(ctx context.Context, url string) (*Timings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("pagespeed: build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "identity")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed: do request: %w", err)
	}
	defer resp.Body.Close()
	ttfb := time.Since(start)

	const maxBody = 10 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("pagespeed: read body: %w", err)
	}
	total := time.Since(start)

	t := &Timings{
		TTFB:       ttfb,
		Total:      total,
		HTMLBytes:  len(body),
		StatusCode: resp.StatusCode,
	}
	countStructure(string(body), t)
	return t, nil
}

// countStructure tokenizes the document and counts the structural
// weight signals: total element nodes, external scripts, stylesheet
// links.
func countStructure(body string, t *Timings) {
	tokenizer := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			return
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := tokenizer.TagName()
		t.DOMNodes++

		switch string(name) {
		case "script":
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tokenizer.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					t.Scripts++
					break
				}
			}
		case "link":
			isStylesheet := false
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tokenizer.TagAttr()
				if string(key) == "rel" && strings.EqualFold(string(val), "stylesheet") {
					isStylesheet = true
				}
			}
			if isStylesheet {
				t.Stylesheets++
			}
		}
	}
}

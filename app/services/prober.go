// Package services provides outbound integrations used by the business
// flows
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe outcomes callers branch on
var (
	ErrTargetUnreachable = errors.New("target url is unreachable")
	ErrTargetTimeout     = errors.New("target url timed out")
)

// PageMetadata is what a successful probe learned about the target page
type PageMetadata struct {
	Title         string
	OGImage       string
	OGDescription string
}

// LivenessProber checks that a URL answers before it is shortened
type LivenessProber interface {
	Probe(ctx context.Context, rawURL string) (*PageMetadata, error)
}

var probeOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "shortener_probe_outcomes_total",
		Help: "Liveness probe results by outcome",
	},
	[]string{"outcome"},
)

var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`)

	// og tags appear with property/content in either order
	ogImageRe1 = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	ogImageRe2 = regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:image["']`)
	ogDescRe1  = regexp.MustCompile(`(?is)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	ogDescRe2  = regexp.MustCompile(`(?is)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:description["']`)
)

// HTTPProber implements LivenessProber with a plain GET that follows
// redirects and reads at most maxBodyBytes of the response body
type HTTPProber struct {
	client       *http.Client
	maxBodyBytes int64
}

// NewHTTPProber creates a prober with the given total timeout and body cap
func NewHTTPProber(timeout time.Duration, maxBodyBytes int64) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: maxBodyBytes,
	}
}

// Probe fetches the URL and extracts page metadata. A status of 400 or
// above counts as unreachable; timeouts are reported separately.
func (p *HTTPProber) Probe(ctx context.Context, rawURL string) (*PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		probeOutcomes.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTargetUnreachable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			probeOutcomes.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w: %v", ErrTargetTimeout, err)
		}
		probeOutcomes.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrTargetUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		probeOutcomes.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: status %d", ErrTargetUnreachable, resp.StatusCode)
	}

	meta := &PageMetadata{}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodyBytes))
		if err == nil {
			meta = extractMetadata(string(body))
		}
	}

	probeOutcomes.WithLabelValues("ok").Inc()
	return meta, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func extractMetadata(body string) *PageMetadata {
	meta := &PageMetadata{}

	if m := titleRe.FindStringSubmatch(body); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}
	if m := ogImageRe1.FindStringSubmatch(body); m != nil {
		meta.OGImage = m[1]
	} else if m := ogImageRe2.FindStringSubmatch(body); m != nil {
		meta.OGImage = m[1]
	}
	if m := ogDescRe1.FindStringSubmatch(body); m != nil {
		meta.OGDescription = m[1]
	} else if m := ogDescRe2.FindStringSubmatch(body); m != nil {
		meta.OGDescription = m[1]
	}

	return meta
}

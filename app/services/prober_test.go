package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeExtractsTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>  Example Page  </title></head><body></body></html>`))
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	meta, err := prober.Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Example Page", meta.Title)
}

func TestProbeExtractsOpenGraphTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head>
			<title>OG Page</title>
			<meta property="og:image" content="https://example.com/img.png">
			<meta content="A description" property="og:description">
		</head></html>`))
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	meta, err := prober.Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/img.png", meta.OGImage)
	assert.Equal(t, "A description", meta.OGDescription, "attribute order does not matter")
}

func TestProbeTitleAttributeVariants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<title data-rh="true">Attributed</title>`))
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	meta, err := prober.Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Attributed", meta.Title)
}

func TestProbeSkipsNonHTMLBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "not a page title"}`))
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	meta, err := prober.Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
}

func TestProbeErrorStatusIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	_, err := prober.Probe(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestProbeServerErrorIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	_, err := prober.Probe(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestProbeConnectionRefusedIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	prober := NewHTTPProber(time.Second, 1024*1024)
	_, err := prober.Probe(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTargetUnreachable)
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	prober := NewHTTPProber(50*time.Millisecond, 1024*1024)
	_, err := prober.Probe(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTargetTimeout)
}

func TestProbeFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<title>Final</title>`))
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	prober := NewHTTPProber(5*time.Second, 1024*1024)
	meta, err := prober.Probe(context.Background(), redirector.URL)
	require.NoError(t, err)
	assert.Equal(t, "Final", meta.Title)
}

func TestProbeRespectsBodyCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		for i := 0; i < 1024; i++ {
			w.Write(make([]byte, 1024))
		}
		w.Write([]byte(`<title>Past The Cap</title>`))
	}))
	defer server.Close()

	prober := NewHTTPProber(5*time.Second, 64*1024)
	meta, err := prober.Probe(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, meta.Title, "title past the body cap is never read")
}

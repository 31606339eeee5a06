package yoastmeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Scraped Article</title>
<meta name="description" content="Scraped description">
<meta name="robots" content="index, nofollow">
<meta property="og:title" content="Scraped OG">
<meta property="og:image" content="/uploads/cover.jpg">
<meta property="og:image:width" content="640">
<meta name="twitter:card" content="app">
</head>
<body><h1>Scraped Article</h1></body>
</html>`

func newPageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeWithColly(t *testing.T) {
	srv := newPageServer(t, nil)

	src, err := scrapeWithColly(context.Background(), srv.URL+"/posts/scraped")
	require.NoError(t, err)

	assert.Equal(t, "Scraped Article", src.Title)
	assert.Equal(t, "Scraped description", src.Description)
	assert.Equal(t, &YoastRobots{Index: "index", Follow: "nofollow"}, src.Robots)
	assert.Equal(t, []YoastImage{{URL: srv.URL + "/uploads/cover.jpg", Width: 640}}, src.OGImage)
	assert.Equal(t, "app", src.TwitterCard)
}

func TestScrapeWithCollyErrors(t *testing.T) {
	srv := newPageServer(t, nil)

	_, err := scrapeWithColly(context.Background(), srv.URL+"/gone")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = scrapeWithColly(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFromPageCachesResult(t *testing.T) {
	var hits int32
	srv := newPageServer(t, &hits)
	url := srv.URL + "/cached"

	first, err := SourceFromPage(context.Background(), url)
	require.NoError(t, err)
	second, err := SourceFromPage(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestPageMetadata(t *testing.T) {
	srv := newPageServer(t, nil)

	m, err := PageMetadata(context.Background(), srv.URL+"/meta", Fallback{Description: "unused"})
	require.NoError(t, err)

	assert.Equal(t, "Scraped Article", m.Title)
	assert.Equal(t, "Scraped description", m.Description)
	require.NotNil(t, m.Robots)
	assert.False(t, m.Robots.Follow)
	assert.Equal(t, TwitterCardApp, m.Twitter.Card)
	assert.Equal(t, "Scraped OG", m.Twitter.Title)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "example.com/post", want: "http://example.com/post"},
		{in: " https://example.com/a?b=c ", want: "https://example.com/a?b=c"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSourceComplete(t *testing.T) {
	assert.False(t, isSourceComplete(YoastSEO{}))
	assert.False(t, isSourceComplete(YoastSEO{Title: "   "}))
	assert.True(t, isSourceComplete(YoastSEO{OGTitle: "OG"}))
}

func TestWhitelist(t *testing.T) {
	assert.False(t, isWhitelisted("spa.example.com"))
	addToWhitelist("spa.example.com")
	assert.True(t, isWhitelisted("spa.example.com"))
}

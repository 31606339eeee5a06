package yoastmeta_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yoastmeta "github.com/BumpyClock/go-yoastmeta"
)

func TestRenderHead(t *testing.T) {
	m := yoastmeta.Map(yoastmeta.YoastSEO{
		Title:       "Post <A>",
		Canonical:   "https://example.com/post-a/",
		Robots:      &yoastmeta.YoastRobots{Index: "noindex", Follow: "follow"},
		OGSiteName:  "Example",
		OGImage:     []yoastmeta.YoastImage{{URL: "https://example.com/a.jpg", Width: 1200, Height: 630, Type: "image/jpeg"}},
		Author:      "Jane",
		TwitterCard: "summary_large_image",
	}, yoastmeta.Fallback{Description: "Fallback desc"})

	out, err := yoastmeta.RenderHead(m)
	require.NoError(t, err)

	for _, want := range []string{
		`<title>Post &lt;A&gt;</title>`,
		`<meta name="description" content="Fallback desc">`,
		`<link rel="canonical" href="https://example.com/post-a/">`,
		`<meta name="robots" content="noindex, follow">`,
		`<meta name="googlebot" content="noindex, follow">`,
		`<meta property="og:type" content="article">`,
		`<meta property="og:site_name" content="Example">`,
		`<meta property="og:image" content="https://example.com/a.jpg">`,
		`<meta property="og:image:width" content="1200">`,
		`<meta property="og:image:height" content="630">`,
		`<meta property="og:image:type" content="image/jpeg">`,
		`<meta name="twitter:card" content="summary_large_image">`,
		`<meta name="twitter:creator" content="Jane">`,
		`<meta name="twitter:image" content="https://example.com/a.jpg">`,
		`<meta name="author" content="Jane">`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "og:locale")
}

func TestRenderHeadEmptyMetadata(t *testing.T) {
	out, err := yoastmeta.RenderHead(yoastmeta.Map(yoastmeta.YoastSEO{}, yoastmeta.Fallback{}))
	require.NoError(t, err)

	assert.NotContains(t, out, "<title>")
	assert.NotContains(t, out, "robots")
	assert.Equal(t, 2, strings.Count(out, "<meta "))
}

func TestRenderHeadParsesBack(t *testing.T) {
	src := yoastmeta.YoastSEO{
		Title:                "Hello",
		Description:          "World",
		Canonical:            "https://example.com/hello/",
		Robots:               &yoastmeta.YoastRobots{Index: "index", Follow: "nofollow"},
		OGLocale:             "en_US",
		OGType:               "article",
		OGTitle:              "Hello OG",
		OGDescription:        "World OG",
		OGURL:                "https://example.com/hello/",
		OGSiteName:           "Example",
		OGImage:              []yoastmeta.YoastImage{{URL: "https://example.com/a.jpg", Width: 800, Height: 600, Type: "image/jpeg"}},
		ArticlePublishedTime: strPtr("2024-05-01T10:00:00+00:00"),
		Author:               "Jane",
		TwitterCard:          "player",
	}
	m := yoastmeta.Map(src, yoastmeta.Fallback{})

	out, err := yoastmeta.RenderHead(m)
	require.NoError(t, err)

	parsed, err := yoastmeta.ParseHead(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, m, yoastmeta.Map(parsed, yoastmeta.Fallback{}))
}

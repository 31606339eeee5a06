package yoastmeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("yoastmeta: not found")

type Rendered struct {
	Rendered string `json:"rendered"`
}

// Post is the subset of a WordPress REST post the metadata mapping reads.
type Post struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Link          string    `json:"link"`
	Title         Rendered  `json:"title"`
	Excerpt       Rendered  `json:"excerpt"`
	YoastHeadJSON *YoastSEO `json:"yoast_head_json"`
	YoastHead     string    `json:"yoast_head"`
}

// Source returns the post's Yoast object, parsing the rendered yoast_head
// when the JSON form is missing.
func (p *Post) Source() (YoastSEO, error) {
	if p.YoastHeadJSON != nil {
		return *p.YoastHeadJSON, nil
	}
	if strings.TrimSpace(p.YoastHead) == "" {
		return YoastSEO{}, nil
	}
	src, err := ParseHead(strings.NewReader(p.YoastHead))
	if err != nil {
		return YoastSEO{}, fmt.Errorf("parse yoast_head for %q: %w", p.Slug, err)
	}
	return src, nil
}

func (p *Post) Fallback() Fallback {
	return Fallback{
		Title:       StripHTML(p.Title.Rendered),
		Description: StripHTML(p.Excerpt.Rendered),
	}
}

type Client struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Cache
	defaults Fallback
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithDefaults sets site-wide values used when a post has neither Yoast
// data nor a title or excerpt.
func WithDefaults(fb Fallback) ClientOption {
	return func(c *Client) {
		c.defaults = fb
	}
}

// NewClient returns a client for the WordPress site at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache.New(cacheTTL, 2*cacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig returns a client configured from a SiteConfig.
func NewClientFromConfig(cfg SiteConfig, opts ...ClientOption) *Client {
	base := []ClientOption{WithCacheTTL(cfg.CacheTTL), WithDefaults(cfg.Defaults)}
	return NewClient(cfg.WordPressURL, append(base, opts...)...)
}

// Post fetches the published post with the given slug.
func (c *Client) Post(ctx context.Context, slug string) (*Post, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, ErrNotFound
	}

	if cached, found := c.cache.Get(slug); found {
		logrus.Debugf("[yoastmeta] [Post] Cache hit for slug: %s", slug)
		return cached.(*Post), nil
	}

	endpoint, err := urlpkg.JoinPath(c.baseURL, "wp-json", "wp", "v2", "posts")
	if err != nil {
		return nil, fmt.Errorf("build posts endpoint: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("slug", slug)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	logrus.Debugf("[yoastmeta] [Post] Fetching %s", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		logrus.Errorf("[yoastmeta] [Post] Request for slug %s failed: %v", slug, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		logrus.Errorf("[yoastmeta] [Post] Non-OK HTTP status for slug %s: %s", slug, resp.Status)
		return nil, fmt.Errorf("wordpress: unexpected status %s", resp.Status)
	}

	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		logrus.Errorf("[yoastmeta] [Post] Failed to decode response for slug %s: %v", slug, err)
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}

	post := &posts[0]
	c.cache.Set(slug, post, cache.DefaultExpiration)
	return post, nil
}

// PostMetadata fetches the post with the given slug and maps its Yoast data,
// using the post title and excerpt as fallbacks.
func (c *Client) PostMetadata(ctx context.Context, slug string) (Metadata, error) {
	post, err := c.Post(ctx, slug)
	if err != nil {
		return Metadata{}, err
	}
	src, err := post.Source()
	if err != nil {
		logrus.Warnf("[yoastmeta] [PostMetadata] %v", err)
	}
	return Map(src, post.Fallback().Or(c.defaults)), nil
}

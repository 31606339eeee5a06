package yoastmeta

import (
	"context"
	"errors"
	urlpkg "net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

var (
	pageCache         = cache.New(defaultCacheTTL, 2*defaultCacheTTL)
	chromedpWhitelist = cache.New(cache.NoExpiration, cache.NoExpiration)
	chromedpSemaphore = make(chan struct{}, 2)

	chromedpTimeout = 35 * time.Second
)

var errEmptyHead = errors.New("yoastmeta: page head has no metadata")

// SourceFromPage scrapes the head of a live page into a YoastSEO object.
// Pages rendered client-side are loaded in headless Chrome; their domains are
// remembered so later requests skip the plain HTTP attempt.
func SourceFromPage(ctx context.Context, targetURL string) (YoastSEO, error) {
	normalizedURL, err := normalizeURL(targetURL)
	if err != nil {
		logrus.Errorf("[yoastmeta] [SourceFromPage] Invalid URL %s: %v", targetURL, err)
		return YoastSEO{}, err
	}

	if cached, found := pageCache.Get(normalizedURL); found {
		logrus.Debugf("[yoastmeta] [SourceFromPage] Cache hit for URL: %s", normalizedURL)
		return cached.(YoastSEO), nil
	}

	parsedURL, err := urlpkg.Parse(normalizedURL)
	if err != nil {
		return YoastSEO{}, err
	}
	domain := parsedURL.Hostname()

	if isWhitelisted(domain) {
		logrus.Debugf("[yoastmeta] [SourceFromPage] Domain %s is whitelisted. Using Chromedp.", domain)
		return scrapeAndStore(ctx, normalizedURL, scrapeWithChromedp)
	}

	src, err := scrapeWithColly(ctx, normalizedURL)
	if err == nil && isSourceComplete(src) {
		pageCache.Set(normalizedURL, src, cache.DefaultExpiration)
		return src, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return YoastSEO{}, ctx.Err()
		}
		logrus.Errorf("[yoastmeta] [SourceFromPage] Colly scraping failed for URL %s: %v", normalizedURL, err)
	} else {
		logrus.Debugf("[yoastmeta] [SourceFromPage] Colly found no metadata for URL: %s. Falling back to Chromedp.", normalizedURL)
	}

	src, err = scrapeAndStore(ctx, normalizedURL, scrapeWithChromedp)
	if err != nil {
		return YoastSEO{}, err
	}
	addToWhitelist(domain)
	return src, nil
}

// PageMetadata scrapes targetURL and maps the result.
func PageMetadata(ctx context.Context, targetURL string, fallback Fallback) (Metadata, error) {
	src, err := SourceFromPage(ctx, targetURL)
	if err != nil {
		return Metadata{}, err
	}
	return Map(src, fallback), nil
}

func scrapeAndStore(ctx context.Context, targetURL string, scrape func(context.Context, string) (YoastSEO, error)) (YoastSEO, error) {
	src, err := scrape(ctx, targetURL)
	if err != nil {
		logrus.Errorf("[yoastmeta] [SourceFromPage] Scraping failed for URL %s: %v", targetURL, err)
		return YoastSEO{}, err
	}
	pageCache.Set(targetURL, src, cache.DefaultExpiration)
	return src, nil
}

func scrapeWithColly(ctx context.Context, targetURL string) (YoastSEO, error) {
	if err := ctx.Err(); err != nil {
		return YoastSEO{}, err
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	if deadline, ok := ctx.Deadline(); ok {
		c.SetRequestTimeout(time.Until(deadline))
	}

	var (
		src   YoastSEO
		found bool
	)

	c.OnRequest(func(r *colly.Request) {
		logrus.Debugf("[Colly] Visiting %s", r.URL.String())
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		if found {
			return
		}
		src = sourceFromSelection(e.DOM)
		found = true
	})

	if err := c.Visit(targetURL); err != nil {
		return YoastSEO{}, err
	}
	if !found {
		return YoastSEO{}, errEmptyHead
	}

	resolveImageURLs(&src, targetURL)
	return src, nil
}

func scrapeWithChromedp(ctx context.Context, targetURL string) (YoastSEO, error) {
	select {
	case chromedpSemaphore <- struct{}{}:
	case <-ctx.Done():
		return YoastSEO{}, ctx.Err()
	}
	defer func() { <-chromedpSemaphore }()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, chromedpTimeout)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("head", chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		logrus.Error("[Chromedp] Navigation failed: ", err)
		return YoastSEO{}, err
	}

	logrus.Debugf("[Chromedp] Navigation successful for URL: %s", targetURL)

	src, err := ParseHead(strings.NewReader(htmlContent))
	if err != nil {
		logrus.Errorf("[Chromedp] Failed to parse HTML for URL %s: %v", targetURL, err)
		return YoastSEO{}, err
	}
	resolveImageURLs(&src, targetURL)

	logrus.Debugf("[Chromedp] Title: %s, Description: %s, Images: %d", src.Title, src.Description, len(src.OGImage))

	return src, nil
}

func isSourceComplete(src YoastSEO) bool {
	return strings.TrimSpace(src.Title) != "" ||
		strings.TrimSpace(src.OGTitle) != "" ||
		strings.TrimSpace(src.Description) != ""
}

// resolveImageURLs makes relative og:image URLs absolute against the page URL.
func resolveImageURLs(src *YoastSEO, pageURL string) {
	base, err := urlpkg.Parse(pageURL)
	if err != nil {
		logrus.Warnf("[resolveImageURLs] Failed to parse URL %s: %v", pageURL, err)
		return
	}
	for i := range src.OGImage {
		ref, err := urlpkg.Parse(src.OGImage[i].URL)
		if err != nil || ref.IsAbs() {
			continue
		}
		src.OGImage[i].URL = base.ResolveReference(ref).String()
	}
}

func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "http://" + rawURL
	}
	parsed, err := urlpkg.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", errors.New("yoastmeta: URL has no host")
	}
	return parsed.String(), nil
}

func addToWhitelist(domain string) {
	chromedpWhitelist.Set(domain, true, cache.NoExpiration)
	logrus.Debugf("[Whitelist] Domain %s added to Chromedp whitelist.", domain)
}

func isWhitelisted(domain string) bool {
	_, exists := chromedpWhitelist.Get(domain)
	return exists
}

package yoastmeta

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// ParseHead reads the meta tags of a rendered HTML head, such as the
// yoast_head string WordPress returns, back into a YoastSEO object.
func ParseHead(r io.Reader) (YoastSEO, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return YoastSEO{}, err
	}
	return sourceFromSelection(doc.Selection), nil
}

func sourceFromSelection(sel *goquery.Selection) YoastSEO {
	var src YoastSEO

	src.Title = strings.TrimSpace(sel.Find("title").First().Text())
	src.Description = metaContent(sel, `meta[name="description"]`)
	if href, exists := sel.Find(`link[rel="canonical"]`).First().Attr("href"); exists {
		src.Canonical = strings.TrimSpace(href)
	}

	if robots, exists := sel.Find(`meta[name="robots"]`).First().Attr("content"); exists {
		src.Robots = parseRobots(robots)
	}

	src.OGLocale = metaContent(sel, `meta[property="og:locale"]`)
	src.OGType = metaContent(sel, `meta[property="og:type"]`)
	src.OGTitle = metaContent(sel, `meta[property="og:title"]`)
	src.OGDescription = metaContent(sel, `meta[property="og:description"]`)
	src.OGURL = metaContent(sel, `meta[property="og:url"]`)
	src.OGSiteName = metaContent(sel, `meta[property="og:site_name"]`)
	src.OGImage = parseImages(sel)

	if published, exists := sel.Find(`meta[property="article:published_time"]`).First().Attr("content"); exists {
		published = strings.TrimSpace(published)
		src.ArticlePublishedTime = &published
	}
	if modified, exists := sel.Find(`meta[property="article:modified_time"]`).First().Attr("content"); exists {
		modified = strings.TrimSpace(modified)
		src.ArticleModifiedTime = &modified
	}

	src.Author = metaContent(sel, `meta[name="author"]`)
	if src.Author == "" {
		src.Author = metaContent(sel, `meta[name="twitter:creator"]`)
	}

	src.TwitterCard = metaContent(sel, `meta[name="twitter:card"]`)
	src.TwitterMisc = parseTwitterMisc(sel)
	src.Schema = parseSchema(sel)

	return src
}

func metaContent(sel *goquery.Selection, selector string) string {
	content, _ := sel.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// parseRobots splits a robots directive list such as
// "index, follow, max-snippet:-1" into its Yoast fields.
func parseRobots(content string) *YoastRobots {
	robots := &YoastRobots{}
	for _, token := range strings.Split(content, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		name, _, _ := strings.Cut(token, ":")
		switch name {
		case "index", "noindex":
			robots.Index = token
		case "follow", "nofollow":
			robots.Follow = token
		case "max-snippet":
			robots.MaxSnippet = token
		case "max-image-preview":
			robots.MaxImagePreview = token
		case "max-video-preview":
			robots.MaxVideoPreview = token
		}
	}
	return robots
}

// parseImages groups og:image and its structured properties in document
// order. A property tag applies to the closest preceding og:image.
func parseImages(sel *goquery.Selection) []YoastImage {
	var images []YoastImage
	sel.Find(`meta[property^="og:image"]`).Each(func(i int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, _ := s.Attr("content")
		content = strings.TrimSpace(content)

		if property == "og:image" || property == "og:image:url" {
			if content != "" {
				images = append(images, YoastImage{URL: content})
			}
			return
		}
		if len(images) == 0 {
			return
		}
		img := &images[len(images)-1]
		switch property {
		case "og:image:width":
			if width, err := strconv.Atoi(content); err == nil {
				img.Width = width
			}
		case "og:image:height":
			if height, err := strconv.Atoi(content); err == nil {
				img.Height = height
			}
		case "og:image:type":
			img.Type = content
		}
	})
	return images
}

// parseTwitterMisc pairs twitter:labelN with twitter:dataN.
func parseTwitterMisc(sel *goquery.Selection) map[string]string {
	var misc map[string]string
	for n := 1; ; n++ {
		suffix := strconv.Itoa(n)
		label := metaContent(sel, `meta[name="twitter:label`+suffix+`"]`)
		if label == "" {
			break
		}
		if misc == nil {
			misc = map[string]string{}
		}
		misc[label] = metaContent(sel, `meta[name="twitter:data`+suffix+`"]`)
	}
	return misc
}

func parseSchema(sel *goquery.Selection) map[string]any {
	var schema map[string]any
	sel.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var payload map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			logrus.Warnf("[yoastmeta] [ParseHead] Skipping invalid JSON-LD block %d: %v", i, err)
			return true
		}
		schema = payload
		return false
	})
	return schema
}

// StripHTML returns the text content of an HTML fragment with whitespace
// collapsed, e.g. a rendered WordPress excerpt.
func StripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

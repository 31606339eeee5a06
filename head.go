package yoastmeta

import (
	"html/template"
	"strconv"
	"strings"
)

type headTag struct {
	Kind  string // "name", "property" or "link"
	Key   string
	Value string
}

var headTemplate = template.Must(template.New("head").Parse(
	`{{if .Title}}<title>{{.Title}}</title>
{{end}}{{range .Tags}}{{if eq .Kind "link"}}<link rel="{{.Key}}" href="{{.Value}}">
{{else if eq .Kind "name"}}<meta name="{{.Key}}" content="{{.Value}}">
{{else}}<meta property="{{.Key}}" content="{{.Value}}">
{{end}}{{end}}`))

// RenderHead renders m as the tags of an HTML document head.
func RenderHead(m Metadata) (string, error) {
	var b strings.Builder
	err := headTemplate.Execute(&b, struct {
		Title string
		Tags  []headTag
	}{
		Title: m.Title,
		Tags:  headTags(m),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func headTags(m Metadata) []headTag {
	var tags []headTag
	add := func(kind, key, value string) {
		if value != "" {
			tags = append(tags, headTag{Kind: kind, Key: key, Value: value})
		}
	}

	add("name", "description", m.Description)
	add("link", "canonical", m.Alternates.Canonical)

	if m.Robots != nil {
		add("name", "robots", robotsContent(m.Robots.Index, m.Robots.Follow))
		if gb := m.Robots.GoogleBot; gb != nil {
			add("name", "googlebot", robotsContent(gb.Index, gb.Follow))
		}
	}

	og := m.OpenGraph
	add("property", "og:type", og.Type)
	add("property", "og:locale", og.Locale)
	add("property", "og:url", og.URL)
	add("property", "og:site_name", og.SiteName)
	add("property", "og:title", og.Title)
	add("property", "og:description", og.Description)
	for _, img := range og.Images {
		add("property", "og:image", img.URL)
		if img.Width > 0 {
			add("property", "og:image:width", strconv.Itoa(img.Width))
		}
		if img.Height > 0 {
			add("property", "og:image:height", strconv.Itoa(img.Height))
		}
		add("property", "og:image:type", img.Type)
	}

	tw := m.Twitter
	add("name", "twitter:card", tw.Card.String())
	add("name", "twitter:title", tw.Title)
	add("name", "twitter:description", tw.Description)
	add("name", "twitter:creator", tw.Creator)
	for _, img := range tw.Images {
		add("name", "twitter:image", img)
	}

	for _, a := range m.Authors {
		add("name", "author", a.Name)
	}

	for _, p := range m.Other {
		add("property", p.Key, p.Value)
	}

	return tags
}

func robotsContent(index, follow bool) string {
	directives := make([]string, 0, 2)
	if index {
		directives = append(directives, "index")
	} else {
		directives = append(directives, "noindex")
	}
	if follow {
		directives = append(directives, "follow")
	} else {
		directives = append(directives, "nofollow")
	}
	return strings.Join(directives, ", ")
}

package yoastmeta

import "sort"

const (
	defaultOGType = "article"

	robotsNoIndex  = "noindex"
	robotsNoFollow = "nofollow"

	metaPublishedTime = "article:published_time"
	metaModifiedTime  = "article:modified_time"
)

// Map converts a Yoast SEO object into page Metadata. Title and description
// fall back to the values in fallback when the Yoast object leaves them empty.
func Map(src YoastSEO, fallback Fallback) Metadata {
	m := Metadata{
		Title:       firstNonEmpty(src.Title, fallback.Title),
		Description: firstNonEmpty(src.Description, fallback.Description),
		Alternates:  Alternates{Canonical: src.Canonical},
		Robots:      mapRobots(src.Robots),
		OpenGraph: OpenGraph{
			Type:        firstNonEmpty(src.OGType, defaultOGType),
			Locale:      src.OGLocale,
			URL:         src.OGURL,
			SiteName:    src.OGSiteName,
			Title:       src.OGTitle,
			Description: src.OGDescription,
		},
		Twitter: Twitter{
			Card:        ParseTwitterCard(src.TwitterCard),
			Title:       firstNonEmpty(src.OGTitle, src.Title),
			Description: firstNonEmpty(src.OGDescription, src.Description),
			Creator:     src.Author,
		},
		Other: []MetaPair{},
	}

	if len(src.OGImage) > 0 {
		m.OpenGraph.Images = make([]OGImage, 0, len(src.OGImage))
		m.Twitter.Images = make([]string, 0, len(src.OGImage))
		for _, img := range src.OGImage {
			m.OpenGraph.Images = append(m.OpenGraph.Images, OGImage{
				URL:    img.URL,
				Width:  img.Width,
				Height: img.Height,
				Type:   img.Type,
			})
			m.Twitter.Images = append(m.Twitter.Images, img.URL)
		}
	}

	if src.Author != "" {
		m.Authors = []Author{{Name: src.Author}}
	}

	if src.ArticlePublishedTime != nil {
		m.Other = setMetaPair(m.Other, metaPublishedTime, *src.ArticlePublishedTime)
	}
	if src.ArticleModifiedTime != nil {
		m.Other = setMetaPair(m.Other, metaModifiedTime, *src.ArticleModifiedTime)
	}
	keys := make([]string, 0, len(src.TwitterMisc))
	for k := range src.TwitterMisc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Other = setMetaPair(m.Other, k, src.TwitterMisc[k])
	}

	return m
}

func mapRobots(r *YoastRobots) *Robots {
	if r == nil {
		return nil
	}
	index := r.Index != robotsNoIndex
	follow := r.Follow != robotsNoFollow
	return &Robots{
		Index:     index,
		Follow:    follow,
		GoogleBot: &RobotsDirectives{Index: index, Follow: follow},
	}
}

// setMetaPair overwrites an existing key in place so ordering stays stable.
func setMetaPair(pairs []MetaPair, key, value string) []MetaPair {
	for i := range pairs {
		if pairs[i].Key == key {
			pairs[i].Value = value
			return pairs
		}
	}
	return append(pairs, MetaPair{Key: key, Value: value})
}

// Or fills the empty fields of fb from defaults.
func (fb Fallback) Or(defaults Fallback) Fallback {
	return Fallback{
		Title:       firstNonEmpty(fb.Title, defaults.Title),
		Description: firstNonEmpty(fb.Description, defaults.Description),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

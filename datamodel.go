package yoastmeta

// YoastSEO is the yoast_head_json object attached to WordPress content items.
type YoastSEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Canonical   string `json:"canonical,omitempty"`

	Robots *YoastRobots `json:"robots,omitempty"`

	OGLocale      string       `json:"og_locale,omitempty"`
	OGType        string       `json:"og_type,omitempty"`
	OGTitle       string       `json:"og_title,omitempty"`
	OGDescription string       `json:"og_description,omitempty"`
	OGURL         string       `json:"og_url,omitempty"`
	OGSiteName    string       `json:"og_site_name,omitempty"`
	OGImage       []YoastImage `json:"og_image,omitempty"`

	ArticlePublishedTime *string `json:"article_published_time,omitempty"`
	ArticleModifiedTime  *string `json:"article_modified_time,omitempty"`

	Author string `json:"author,omitempty"`

	TwitterCard string            `json:"twitter_card,omitempty"`
	TwitterMisc map[string]string `json:"twitter_misc,omitempty"`

	Schema map[string]any `json:"schema,omitempty"`
}

type YoastRobots struct {
	Index           string `json:"index,omitempty"`
	Follow          string `json:"follow,omitempty"`
	MaxSnippet      string `json:"max-snippet,omitempty"`
	MaxImagePreview string `json:"max-image-preview,omitempty"`
	MaxVideoPreview string `json:"max-video-preview,omitempty"`
}

type YoastImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Fallback supplies page-level values used when the Yoast object has none.
type Fallback struct {
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Metadata is the page metadata handed to the rendering layer.
type Metadata struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Alternates  Alternates `json:"alternates"`
	Robots      *Robots    `json:"robots,omitempty"`
	OpenGraph   OpenGraph  `json:"openGraph"`
	Twitter     Twitter    `json:"twitter"`
	Authors     []Author   `json:"authors,omitempty"`
	Other       []MetaPair `json:"other"`
}

type Alternates struct {
	Canonical string `json:"canonical,omitempty"`
}

type Robots struct {
	Index     bool              `json:"index"`
	Follow    bool              `json:"follow"`
	GoogleBot *RobotsDirectives `json:"googleBot,omitempty"`
}

type RobotsDirectives struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

type OpenGraph struct {
	Type        string    `json:"type"`
	Locale      string    `json:"locale,omitempty"`
	URL         string    `json:"url,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Images      []OGImage `json:"images,omitempty"`
}

type OGImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Type   string `json:"type,omitempty"`
}

type Twitter struct {
	Card        TwitterCard `json:"card"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Images      []string    `json:"images,omitempty"`
	Creator     string      `json:"creator,omitempty"`
}

type Author struct {
	Name string `json:"name"`
}

// MetaPair is an extra meta tag the metadata structure has no field for.
type MetaPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OtherValue returns the value of the extra meta tag named key.
func (m Metadata) OtherValue(key string) (string, bool) {
	for _, p := range m.Other {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

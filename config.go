package yoastmeta

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultCacheTTL = 10 * time.Minute

var (
	userAgent       string
	YOASTMETA_DEBUG bool

	cacheTTL = defaultCacheTTL
)

func init() {
	if value, exists := os.LookupEnv("YOASTMETA_DEBUG"); exists {
		if parsedValue, err := strconv.ParseBool(value); err == nil {
			YOASTMETA_DEBUG = parsedValue
		}
	}
	if YOASTMETA_DEBUG {
		logrus.Info("[yoastmeta] Debug mode is enabled. To disable set env YOASTMETA_DEBUG=false.")
		logrus.SetLevel(logrus.DebugLevel)
	}

	userAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	if value, exists := os.LookupEnv("YOASTMETA_USER_AGENT"); exists {
		userAgent = value
	}

	if value, exists := os.LookupEnv("YOASTMETA_CACHE_TTL"); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			cacheTTL = d
		} else {
			logrus.Warnf("[yoastmeta] Ignoring invalid YOASTMETA_CACHE_TTL %q", value)
		}
	}
	pageCache = cache.New(cacheTTL, 2*cacheTTL)
}

// SiteConfig is the site-wide configuration read from a YAML file.
type SiteConfig struct {
	WordPressURL string        `yaml:"wordpress_url"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	Defaults     Fallback      `yaml:"defaults"`
}

// LoadSiteConfig reads a SiteConfig from path.
func LoadSiteConfig(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read site config: %w", err)
	}
	return ParseSiteConfig(data)
}

func ParseSiteConfig(data []byte) (SiteConfig, error) {
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse site config: %w", err)
	}
	cfg.WordPressURL = strings.TrimRight(strings.TrimSpace(cfg.WordPressURL), "/")
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cacheTTL
	}
	return cfg, nil
}

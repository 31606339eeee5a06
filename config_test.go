package yoastmeta_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yoastmeta "github.com/BumpyClock/go-yoastmeta"
)

func TestLoadSiteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
wordpress_url: " https://blog.example.com/ "
cache_ttl: 90s
defaults:
  title: Example Blog
  description: Notes from the example team
`), 0o600))

	cfg, err := yoastmeta.LoadSiteConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com", cfg.WordPressURL)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, yoastmeta.Fallback{Title: "Example Blog", Description: "Notes from the example team"}, cfg.Defaults)
}

func TestParseSiteConfigDefaults(t *testing.T) {
	cfg, err := yoastmeta.ParseSiteConfig(nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.WordPressURL)
	assert.Greater(t, int64(cfg.CacheTTL), int64(0))
	assert.Equal(t, yoastmeta.Fallback{}, cfg.Defaults)
}

func TestLoadSiteConfigErrors(t *testing.T) {
	_, err := yoastmeta.LoadSiteConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = yoastmeta.ParseSiteConfig([]byte("defaults: [unclosed"))
	assert.Error(t, err)
}

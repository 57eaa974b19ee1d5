package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearDeclgenEnv clears all DECLGEN_* env vars to isolate tests from the ambient environment.
func clearDeclgenEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DECLGEN_CACHE_ENABLED", "DECLGEN_CACHE_MAX_SIZE",
		"DECLGEN_CACHE_FILE_TTL", "DECLGEN_CACHE_CONTENT_TTL",
		"DECLGEN_CACHE_SWEEP_INTERVAL", "DECLGEN_LIST_LIMIT",
		"DECLGEN_MAX_LIMIT", "DECLGEN_MAX_INLINE_SIZE", "DECLGEN_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearDeclgenEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Empty(t, c.ProductsConfig)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearDeclgenEnv(t)
	t.Setenv("DECLGEN_CACHE_ENABLED", "false")
	t.Setenv("DECLGEN_CACHE_MAX_SIZE", "50")
	t.Setenv("DECLGEN_CACHE_FILE_TTL", "30m")
	t.Setenv("DECLGEN_CACHE_CONTENT_TTL", "10m")
	t.Setenv("DECLGEN_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("DECLGEN_LIST_LIMIT", "20")
	t.Setenv("DECLGEN_MAX_LIMIT", "200")
	t.Setenv("DECLGEN_MAX_INLINE_SIZE", "2048")
	t.Setenv("DECLGEN_CONFIG", "products.yaml")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 200, c.MaxLimit)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, "products.yaml", c.ProductsConfig)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearDeclgenEnv(t)
	t.Setenv("DECLGEN_CACHE_ENABLED", "maybe")
	t.Setenv("DECLGEN_CACHE_MAX_SIZE", "-3")
	t.Setenv("DECLGEN_CACHE_FILE_TTL", "soon")
	t.Setenv("DECLGEN_LIST_LIMIT", "lots")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ListLimit)
}

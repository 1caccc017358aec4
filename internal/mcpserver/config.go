package mcpserver

import (
	"time"

	"github.com/erraggy/oasnorm/differ"
	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/transform"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Pipeline defaults.
	Preset     string
	PruneBound int

	// Diff defaults.
	ContextLines int

	// Sibling document cache.
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration

	// MaxInlineSize caps inline content in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASNORM_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Preset:        cliutil.EnvChoice("OASNORM_PRESET", transform.DefaultPreset, transform.PresetNames()),
		PruneBound:    cliutil.EnvInt("OASNORM_PRUNE_BOUND", transform.DefaultPruneBound),
		ContextLines:  cliutil.EnvNonNegativeInt("OASNORM_CONTEXT_LINES", differ.DefaultContextLines),
		CacheEnabled:  cliutil.EnvBool("OASNORM_CACHE_ENABLED", true),
		CacheSize:     cliutil.EnvInt("OASNORM_CACHE_SIZE", resolver.DefaultCacheSize),
		CacheTTL:      cliutil.EnvDuration("OASNORM_CACHE_TTL", 15*time.Minute),
		MaxInlineSize: cliutil.EnvInt64("OASNORM_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

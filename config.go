package viewstate

import (
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config is the codec's lazily-initialized, environment-driven
// configuration (spec.md §5: no persisted state, but the defensive
// clamps named throughout §3/§4 are tunable the way the teacher's
// Config.StrictMode and DicomReadBufferSize are).
type Config struct {
	// StrictMode is populated from VIEWSTATE_STRICTMODE. No decode path
	// reads it: it changes neither logging nor parsing, and the parser
	// never throws for in-band malformations (spec.md §7 policy).
	StrictMode bool

	// MaxCollectionLen is the clamp applied to List/Map/SparseList/
	// TypedArray declared counts (spec.md §4.4, §8 P6). Default 10000.
	MaxCollectionLen int

	// MaxFallbackRuns is the cap on printable-ASCII runs kept by the
	// stream-level fallback extractor (spec.md §4.8). Default 200.
	MaxFallbackRuns int

	// MaxOpaqueStrings is the cap on printable-ASCII runs kept inside a
	// single Opaque extract (spec.md §4.7). Default 50.
	MaxOpaqueStrings int

	// LogLevel names the zerolog level to install globally.
	LogLevel string

	// do not access / write `_set`. It is used internally.
	_set bool
}

var config Config

func intFromEnvDefault(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func boolFromEnvDefault(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func strFromEnvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// GetConfig returns the codec configuration, populating it from the
// environment on first call.
func GetConfig() Config {
	if !config._set {
		config.StrictMode = boolFromEnvDefault("VIEWSTATE_STRICTMODE", false)
		config.MaxCollectionLen = intFromEnvDefault("VIEWSTATE_MAXCOLLECTION", 10000)
		config.MaxFallbackRuns = intFromEnvDefault("VIEWSTATE_MAXFALLBACKRUNS", 200)
		config.MaxOpaqueStrings = intFromEnvDefault("VIEWSTATE_MAXOPAQUESTRINGS", 50)
		config.LogLevel = strings.ToLower(strFromEnvDefault("VIEWSTATE_LOGLEVEL", "info"))
		applyLogLevel(config.LogLevel)
		config._set = true
	}
	return config
}

// OverrideConfig replaces the active configuration, bypassing the
// environment. Tests use this to pin the collection clamp low.
func OverrideConfig(newconfig Config) {
	newconfig._set = true
	config = newconfig
	applyLogLevel(config.LogLevel)
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled", "none", "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

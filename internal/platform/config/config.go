// Package config reads application settings from the environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"artisantrend/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a prefixed view over environment variables, e.g. New().Prefix("CORE_RUN_")
type Conf struct{ prefix string }

// New returns an unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// LoadDotEnv loads the given .env files (default ".env") without overriding
// variables already present. Missing files are skipped.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Get().Warn().Err(err).Str("file", f).Msg("dotenv load failed")
		}
	}
}

// must fetches a required key and converts it, panicking with context on failure
func must[T any](c Conf, key, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(key)).Str("value", s).Msgf("invalid %s value", kind)
	}
	return v
}

// may fetches an optional key, falling back to def on absence or parse failure
func may[T any](c Conf, key, kind string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func parsePort(s string) (string, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return "", err
	}
	if p < 1 || p > 65535 {
		return "", strconv.ErrRange
	}
	return ":" + s, nil
}

// MustString panics when key is unset
func (c Conf) MustString(key string) string { return must(c, key, "string", parseString) }

// MustInt panics when key is unset or not an int
func (c Conf) MustInt(key string) int { return must(c, key, "int", strconv.Atoi) }

// MustBool panics when key is unset or not a bool
func (c Conf) MustBool(key string) bool { return must(c, key, "bool", strconv.ParseBool) }

// MustDuration panics when key is unset or not a duration like 250ms or 2s
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", time.ParseDuration)
}

// MustPort returns a listen address like ":4000", panicking outside 1..65535
func (c Conf) MustPort(key string) string { return must(c, key, "port", parsePort) }

// Require panics on the first unset key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.lookup(k) == "" {
			logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
		}
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, parseString) }

// MayInt returns the value or def; invalid values are logged
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, strconv.Atoi) }

// MayFloat64 returns the value or def; invalid values are logged
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, "float64", def, parseFloat)
}

// MayBool returns the value or def; invalid values are logged
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, strconv.ParseBool) }

// MayDuration returns the value or def; invalid values are logged
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, time.ParseDuration)
}

// MayCSV splits a comma list, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it matches one of allowed (case-insensitive), def when unset.
// Any other value panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	if v == "" {
		return ""
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

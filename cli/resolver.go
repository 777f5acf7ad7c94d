package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/kumihan/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys are flag names, written with hyphens or underscores. Nested
// mappings join their keys with a hyphen, so both of these set
// --log-level:
//
//	log_level: debug
//
//	log:
//	  level: debug
//
// A file that cannot be decoded is ignored with a warning. Command-line
// flags override configuration values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.Any("error", err))
		}

		return config{}, nil
	}

	cfg := make(config)
	cfg.flatten("", raw)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened key/value map.
type config map[string]any

// flatten stores the leaves of m under hyphen-joined, normalized keys.
func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := normalizeKey(k)
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := v.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(v)
	}
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(k), "_", "-"))
}

// scalar converts numbers to strings, which kong parses with the flag's own
// mapper.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[normalizeKey(flag.Name)]; ok {
		return value, nil
	}

	return nil, nil
}

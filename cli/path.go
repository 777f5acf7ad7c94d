package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/kumihan/pkg"
)

// configFile is the base name of the YAML configuration file.
const configFile = "config.yaml"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefixRules rewrite the executable name into the directory prefix.
var basePrefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), pkg.Name}, // dlv default output
	{regexp.MustCompile(`^.*\.test$`), pkg.Name},       // go test binaries
}

// prefixFor returns the directory prefix for the executable at path.
func prefixFor(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")

	id := base
	if !strings.HasSuffix(base, ".test") {
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	for _, rule := range basePrefixRules {
		id = rule.rex.ReplaceAllString(id, rule.rep)
	}

	if id == "" {
		return pkg.Name
	}

	return id
}

// basePrefix is the name of the per-user configuration and cache
// directories: the executable's base name, normally "kumihan".
var basePrefix = sync.OnceValue(
	func() string {
		exe, err := os.Executable()
		if err != nil {
			exe = os.Args[0]
		}

		return prefixFor(exe)
	},
)

// userDir joins the prefix onto the directory returned by primary, falling
// back to ~/fallback and then the working directory.
func userDir(primary func() (string, error), fallback string) string {
	dir, err := primary()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, basePrefix())
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins the configuration directory with elem.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		err := os.MkdirAll(dir, defaultDirMode)
		if err != nil {
			return err
		}
	}

	return nil
}

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kumihan/log"
	"github.com/ardnew/kumihan/notation"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type parserConfigKey struct{}

// WithParserConfig returns a new context.Context carrying the parser
// configuration used by every command.
func WithParserConfig(ctx context.Context, cfg notation.Config) context.Context {
	return context.WithValue(ctx, parserConfigKey{}, cfg)
}

// parserConfigFrom returns the configuration stored by WithParserConfig, or
// [notation.DefaultConfig] if none was stored.
func parserConfigFrom(ctx context.Context) notation.Config {
	cfg, ok := ctx.Value(parserConfigKey{}).(notation.Config)
	if !ok {
		return notation.DefaultConfig()
	}

	return cfg
}

// newCoordinator builds a coordinator from the context's parser
// configuration, logging through the package default logger.
func newCoordinator(
	ctx context.Context,
	opts ...notation.Option,
) (*notation.Coordinator, error) {
	opts = append([]notation.Option{notation.WithLogger(log.Default())}, opts...)

	c, err := notation.NewCoordinator(parserConfigFrom(ctx), opts...)
	if err != nil {
		return nil, ErrParserConfig.Wrap(err)
	}

	return c, nil
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName is the source ID reported for standard input.
const stdinName = "<stdin>"

// source is one opened input document.
type source struct {
	name string
	io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens each path once, in order. All occurrences of "-", and
// any path naming the same file as stdin, collapse into a single stdin
// source placed last. The caller closes the returned sources.
func openSources(paths []string) ([]source, error) {
	var (
		srcs     []source
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := statKey(os.Stdin)

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		file, key, err := openFile(path)
		if err != nil {
			closeSources(srcs)

			return nil, ErrOpenSource.Wrap(err).With(slog.String("path", path))
		}

		if stdinOK && key == stdinKey {
			hasStdin = true

			file.Close()

			continue
		}

		if _, dup := seen[key]; dup {
			file.Close()

			continue
		}

		seen[key] = struct{}{}
		srcs = append(srcs, source{name: path, ReadCloser: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinName, ReadCloser: io.NopCloser(os.Stdin)})
	}

	return srcs, nil
}

// openFile opens the file at path after resolving symlinks and returns its
// identity.
func openFile(path string) (*os.File, fileKey, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, fileKey{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, err
	}

	key, ok := statKey(file)
	if !ok {
		file.Close()

		return nil, fileKey{}, errors.New("cannot identify file")
	}

	return file, key, nil
}

// statKey returns the device/inode identity of f.
func statKey(f *os.File) (fileKey, bool) {
	info, err := f.Stat()
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true //nolint:unconvert
}

func closeSources(srcs []source) {
	for _, s := range srcs {
		_ = s.Close()
	}
}

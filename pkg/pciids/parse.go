package pciids

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineLen bounds a single database line.
const maxLineLen = 1 << 20

// Option configures parsing.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives a debug summary of each build.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse reads a pci.ids database from r and builds a table from it.
//
// Parsing stops at the first line that matches no record grammar and the
// remaining lines are ignored. A leading UTF-8 byte order mark is dropped.
func Parse(r io.Reader, opts ...Option) (*Table, error) {
	o := buildOptions(opts)

	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	b := newBuilder()
	for scanner.Scan() {
		more, err := b.consume(scanner.Text())
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pci.ids: %w", err)
	}

	vendors, classes, err := b.finish()
	if err != nil {
		return nil, err
	}

	t, err := newTable(vendors, classes)
	if err != nil {
		return nil, fmt.Errorf("building table: %w", err)
	}

	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "pci.ids table built",
		slog.Int("lines", b.lines),
		slog.Int("vendors", t.stats.Vendors),
		slog.Int("devices", t.stats.Devices),
		slog.Int("classes", t.stats.Classes),
		slog.Int("subclasses", t.stats.Subclasses),
	)
	return t, nil
}

// ParseBytes builds a table from an in-memory pci.ids database.
func ParseBytes(data []byte, opts ...Option) (*Table, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// ParseFile builds a table from the pci.ids database at path.
func ParseFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

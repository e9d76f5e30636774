package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// upstreamURL serves the current pci.ids from the PCI ID Project.
const upstreamURL = "https://raw.githubusercontent.com/pciutils/pciids/master/pci.ids"

const (
	fetchTimeout = 60 * time.Second

	// maxDatabaseSize bounds the download; the upstream file is a few MiB.
	maxDatabaseSize = 64 << 20
)

// fetchDatabase downloads a pci.ids file from url and replaces the file at
// path with it. The download is parsed before it is written, so a failed or
// corrupt fetch leaves the existing file untouched.
func fetchDatabase(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatabaseSize+1))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(data) > maxDatabaseSize {
		return fmt.Errorf("fetching %s: database larger than %d bytes", url, maxDatabaseSize)
	}

	tbl, err := pciids.ParseBytes(data)
	if err != nil {
		return fmt.Errorf("downloaded database: %w", err)
	}
	if tbl.Stats().Vendors == 0 {
		return errors.New("downloaded database has no vendors")
	}

	return replaceFile(path, data)
}

// replaceFile writes data next to path and renames it into place.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pci.ids-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// updateDatabase refreshes the file at path from url. A failed fetch is
// reported on w and the cached copy is kept.
func updateDatabase(ctx context.Context, client *http.Client, url, path string, w io.Writer) {
	if err := fetchDatabase(ctx, client, url, path); err != nil {
		fmt.Fprintf(w, "warning: %v; using cached %s\n", err, path)
		return
	}
	fmt.Fprintf(w, "  updated %s from %s\n", path, url)
}

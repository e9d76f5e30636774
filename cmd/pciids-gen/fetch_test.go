package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cachedDB = "8086  Intel Corporation\n"

const freshDB = `8086  Intel Corporation
	100e  82540EM Gigabit Ethernet Controller
1af4  Red Hat, Inc.
C 0c  Serial bus controller
`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func cachedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pci.ids")
	if err := os.WriteFile(path, []byte(cachedDB), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFetchDatabaseReplacesFile(t *testing.T) {
	srv := serve(t, http.StatusOK, freshDB)
	path := cachedFile(t)

	if err := fetchDatabase(context.Background(), srv.Client(), srv.URL, path); err != nil {
		t.Fatalf("fetchDatabase: %v", err)
	}
	if got := readString(t, path); got != freshDB {
		t.Errorf("file = %q, want downloaded database", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestFetchDatabaseKeepsCacheOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, freshDB, "unexpected status 500"},
		{"not found", http.StatusNotFound, "404: Not Found", "unexpected status 404"},
		{"corrupt body", http.StatusOK, "8086  Intel\n8086  Intel again\n", "duplicate vendor id"},
		{"empty body", http.StatusOK, "", "no vendors"},
		{"html page", http.StatusOK, "<html><body>rate limited</body></html>\n", "no vendors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			path := cachedFile(t)

			err := fetchDatabase(context.Background(), srv.Client(), srv.URL, path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
			if got := readString(t, path); got != cachedDB {
				t.Errorf("cached file changed to %q", got)
			}
		})
	}
}

func TestFetchDatabaseCancelled(t *testing.T) {
	srv := serve(t, http.StatusOK, freshDB)
	path := cachedFile(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := fetchDatabase(ctx, srv.Client(), srv.URL, path); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if got := readString(t, path); got != cachedDB {
		t.Errorf("cached file changed to %q", got)
	}
}

func TestUpdateDatabaseWarnsAndContinues(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, "")
	path := cachedFile(t)

	var out bytes.Buffer
	updateDatabase(context.Background(), srv.Client(), srv.URL, path, &out)
	mustContain(t, out.String(), "warning:")
	mustContain(t, out.String(), "using cached "+path)

	// Generation still runs from the cached copy.
	dir := t.TempDir()
	if err := run(path, dir, "pciids"); err != nil {
		t.Fatalf("run after failed update: %v", err)
	}
}

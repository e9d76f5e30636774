// Command pciids-gen generates Go constants from a pci.ids database.
//
// It is run by "go generate" in pkg/pciids to keep the class constants in
// step with the embedded database.
//
// With -update it first replaces the database file with the current upstream
// copy. A failed download is reported and the existing file is used.
//
// Usage:
//
//	pciids-gen -ids <pci.ids> -output <dir> [-package <name>] [-update [-url <url>]]
package main

import (
	"context"
	"flag"
	"net/http"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/pciids/pciids-go/pkg/pciids"
)

func main() {
	idsPath := flag.String("ids", "", "Path to the pci.ids database")
	outputDir := flag.String("output", "", "Output directory for generated Go files")
	pkgName := flag.String("package", "pciids", "Package name of the generated files")
	update := flag.Bool("update", false, "Download the current pci.ids into -ids before generating")
	url := flag.String("url", upstreamURL, "Download location used by -update")
	flag.Parse()

	if *idsPath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: pciids-gen -ids <pci.ids> -output <dir> [-package <name>] [-update [-url <url>]]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *update {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		updateDatabase(ctx, &http.Client{Timeout: fetchTimeout}, *url, *idsPath, os.Stderr)
		cancel()
	}

	if err := run(*idsPath, *outputDir, *pkgName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(idsPath, outputDir, pkgName string) error {
	tbl, err := pciids.ParseFile(idsPath)
	if err != nil {
		return fmt.Errorf("loading database: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	code, err := GenerateClassConstants(pkgName, tbl)
	if err != nil {
		return fmt.Errorf("generating class constants: %w", err)
	}
	outPath := filepath.Join(outputDir, "class_gen.go")
	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing class_gen.go: %w", err)
	}
	fmt.Printf("  generated %s\n", outPath)

	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the unformatted output around for debugging the templates.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}

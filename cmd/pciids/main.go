// Command pciids looks up PCI vendor, device and class names.
//
// By default it uses the pci.ids database embedded in the binary. A
// different database can be parsed with -db, or a CBOR snapshot written by
// "pciids snapshot" can be loaded with -snapshot.
//
// Usage:
//
//	pciids <command> [flags] [args]
//
// Commands:
//
//	vendor    Show a vendor and its devices
//	device    Show a device, its vendor and subsystems
//	class     Show a class and its subclasses
//	subclass  Show a subclass, its class and programming interfaces
//	list      List all vendors or classes
//	export    Export the table as YAML or CBOR
//	snapshot  Write a CBOR snapshot of the table
//	info      Show record counts and the table fingerprint
//	shell     Start an interactive lookup shell
//
// Examples:
//
//	# Look up a device
//	pciids device 8086 100e
//
//	# Same, as YAML
//	pciids device -format yaml 0x8086 0x100e
//
//	# Build a snapshot from a full pci.ids file and use it
//	pciids snapshot -db /usr/share/hwdata/pci.ids -o pci.cbor
//	pciids vendor -snapshot pci.cbor 10de
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pciids/pciids-go/cmd/pciids/commands"
	"github.com/pciids/pciids-go/pkg/pciids"
	"github.com/pciids/pciids-go/pkg/version"
)

const usage = `pciids - PCI ID database lookup

Usage:
  pciids <command> [flags] [args]

Commands:
  vendor <vid>             Show a vendor and its devices
  device <vid> <did>       Show a device, its vendor and subsystems
  class <cid>              Show a class and its subclasses
  subclass <cid> <sid>     Show a subclass, its class and prog-ifs
  list vendors|classes     List all vendors or classes
  export                   Export the table as YAML or CBOR
  snapshot -o <file>       Write a CBOR snapshot of the table
  info                     Show record counts and the table fingerprint
  shell                    Start an interactive lookup shell
  version                  Print the version

Ids are hex, with or without a 0x prefix.
Use "pciids <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "vendor":
		runVendor(args)
	case "device":
		runDevice(args)
	case "class":
		runClass(args)
	case "subclass":
		runSubclass(args)
	case "list":
		runList(args)
	case "export":
		runExport(args)
	case "snapshot":
		runSnapshot(args)
	case "info":
		runInfo(args)
	case "shell":
		runShell(args)
	case "version":
		fmt.Println(version.String())
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// globalFlags are accepted by every command.
type globalFlags struct {
	config   string
	db       string
	snapshot string
	logLevel string
	format   string
}

func newFlagSet(name, synopsis, description string) (*flag.FlagSet, *globalFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pciids %s - %s

Usage:
  pciids %s

Flags:
`, name, description, synopsis)
		fs.PrintDefaults()
	}

	g := &globalFlags{}
	fs.StringVar(&g.config, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&g.db, "db", "", "pci.ids file to parse (default: embedded database)")
	fs.StringVar(&g.snapshot, "snapshot", "", "CBOR snapshot to load instead of parsing")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	return fs, g
}

// load resolves the configuration and opens the table.
func (g *globalFlags) load() (*pciids.Table, commands.Config) {
	cfg, err := commands.LoadConfig(g.config)
	if err != nil {
		fatal(err)
	}
	cfg.SetSource(g.db, g.snapshot)
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.format != "" {
		cfg.Format = g.format
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := commands.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		fatal(err)
	}
	slog.SetDefault(logger)

	tbl, err := commands.OpenTable(cfg, logger)
	if err != nil {
		fatal(err)
	}
	return tbl, cfg
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func parseArgs(fs *flag.FlagSet, args []string, n int) []string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != n {
		fmt.Fprintf(os.Stderr, "Error: expected %d argument(s), got %d\n", n, fs.NArg())
		fs.Usage()
		os.Exit(1)
	}
	return fs.Args()
}

func addFormatFlag(fs *flag.FlagSet, g *globalFlags) {
	fs.StringVar(&g.format, "format", "", "Output format: text, yaml")
}

func runVendor(args []string) {
	fs, g := newFlagSet("vendor", "vendor [flags] <vid>", "Show a vendor and its devices")
	addFormatFlag(fs, g)
	rest := parseArgs(fs, args, 1)

	vid, err := commands.ParseID16(rest[0])
	if err != nil {
		fatal(err)
	}
	tbl, cfg := g.load()
	if err := commands.RunVendor(tbl, vid, cfg.Format, os.Stdout); err != nil {
		fatal(err)
	}
}

func runDevice(args []string) {
	fs, g := newFlagSet("device", "device [flags] <vid> <did>", "Show a device, its vendor and subsystems")
	addFormatFlag(fs, g)
	rest := parseArgs(fs, args, 2)

	vid, err := commands.ParseID16(rest[0])
	if err != nil {
		fatal(err)
	}
	did, err := commands.ParseID16(rest[1])
	if err != nil {
		fatal(err)
	}
	tbl, cfg := g.load()
	if err := commands.RunDevice(tbl, vid, did, cfg.Format, os.Stdout); err != nil {
		fatal(err)
	}
}

func runClass(args []string) {
	fs, g := newFlagSet("class", "class [flags] <cid>", "Show a class and its subclasses")
	addFormatFlag(fs, g)
	rest := parseArgs(fs, args, 1)

	cid, err := commands.ParseID8(rest[0])
	if err != nil {
		fatal(err)
	}
	tbl, cfg := g.load()
	if err := commands.RunClass(tbl, cid, cfg.Format, os.Stdout); err != nil {
		fatal(err)
	}
}

func runSubclass(args []string) {
	fs, g := newFlagSet("subclass", "subclass [flags] <cid> <sid>", "Show a subclass, its class and prog-ifs")
	addFormatFlag(fs, g)
	rest := parseArgs(fs, args, 2)

	cid, err := commands.ParseID8(rest[0])
	if err != nil {
		fatal(err)
	}
	sid, err := commands.ParseID8(rest[1])
	if err != nil {
		fatal(err)
	}
	tbl, cfg := g.load()
	if err := commands.RunSubclass(tbl, cid, sid, cfg.Format, os.Stdout); err != nil {
		fatal(err)
	}
}

func runList(args []string) {
	fs, g := newFlagSet("list", "list [flags] vendors|classes", "List all vendors or classes")
	rest := parseArgs(fs, args, 1)

	tbl, _ := g.load()
	if err := commands.RunList(tbl, rest[0], os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs, g := newFlagSet("export", "export [flags]", "Export the table as YAML or CBOR")
	format := fs.String("format", commands.ExportYAML, "Export format (yaml, cbor)")
	output := fs.String("o", "", "Output file (default: stdout)")
	parseArgs(fs, args, 0)

	tbl, _ := g.load()
	if err := commands.RunExport(tbl, *format, *output, os.Stdout); err != nil {
		fatal(err)
	}
}

func runSnapshot(args []string) {
	fs, g := newFlagSet("snapshot", "snapshot [flags] -o <file>", "Write a CBOR snapshot of the table")
	output := fs.String("o", "", "Output file (required)")
	parseArgs(fs, args, 0)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	tbl, _ := g.load()
	if err := commands.RunSnapshot(tbl, *output); err != nil {
		fatal(err)
	}
}

func runInfo(args []string) {
	fs, g := newFlagSet("info", "info [flags]", "Show record counts and the table fingerprint")
	parseArgs(fs, args, 0)

	tbl, cfg := g.load()
	if err := commands.RunInfo(tbl, cfg.Source(), os.Stdout); err != nil {
		fatal(err)
	}
}

func runShell(args []string) {
	fs, g := newFlagSet("shell", "shell [flags]", "Start an interactive lookup shell")
	addFormatFlag(fs, g)
	parseArgs(fs, args, 0)

	tbl, cfg := g.load()
	sh, err := commands.NewShell(tbl, cfg.Source(), cfg.Format)
	if err != nil {
		fatal(err)
	}

	// Log output goes through readline so it does not clobber the prompt.
	logger, _ := commands.NewLogger(cfg.LogLevel, sh.Stderr())
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()
	sh.Run(ctx)
}

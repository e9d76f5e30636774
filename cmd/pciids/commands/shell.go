package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// Shell is an interactive lookup prompt over a table.
type Shell struct {
	tbl    *pciids.Table
	source string
	format string
	rl     *readline.Instance
}

// NewShell creates a shell reading from the terminal.
func NewShell(tbl *pciids.Table, source, format string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pciids> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("vendor"),
			readline.PcItem("device"),
			readline.PcItem("class"),
			readline.PcItem("subclass"),
			readline.PcItem("list", readline.PcItem("vendors"), readline.PcItem("classes")),
			readline.PcItem("info"),
			readline.PcItem("format", readline.PcItem(FormatText), readline.PcItem(FormatYAML)),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newShell(tbl, source, format, rl), nil
}

func newShell(tbl *pciids.Table, source, format string, rl *readline.Instance) *Shell {
	return &Shell{tbl: tbl, source: source, format: format, rl: rl}
}

// Run reads commands until EOF, quit or ctx is done. Cancelling ctx closes
// the readline instance, which unblocks a pending Readline.
func (s *Shell) Run(ctx context.Context) {
	stop := closeOnDone(ctx, s.rl)
	defer stop()
	defer s.rl.Close()
	out := s.rl.Stdout()
	printShellHelp(out)

	for {
		line, err := s.rl.Readline()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}

		if s.Exec(line, out) {
			fmt.Fprintln(out, "Exiting...")
			return
		}
	}
}

// closeOnDone closes c once ctx is done. The returned stop function ends
// the watch without closing c and waits for the watcher to exit.
func closeOnDone(ctx context.Context, c io.Closer) (stop func()) {
	quit := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			c.Close()
		case <-quit:
		}
	}()
	return func() {
		close(quit)
		<-exited
	}
}

// Exec runs one shell command line, writing results and errors to w.
// It reports whether the shell should exit.
func (s *Shell) Exec(line string, w io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printShellHelp(w)
	case "vendor", "v":
		err = s.cmdVendor(args, w)
	case "device", "d":
		err = s.cmdDevice(args, w)
	case "class", "c":
		err = s.cmdClass(args, w)
	case "subclass", "s":
		err = s.cmdSubclass(args, w)
	case "list", "ls":
		if len(args) != 1 {
			err = fmt.Errorf("usage: list vendors|classes")
			break
		}
		err = RunList(s.tbl, args[0], w)
	case "info":
		err = RunInfo(s.tbl, s.source, w)
	case "format":
		err = s.cmdFormat(args, w)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return false
}

func (s *Shell) cmdVendor(args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: vendor <vid>")
	}
	vid, err := ParseID16(args[0])
	if err != nil {
		return err
	}
	return RunVendor(s.tbl, vid, s.format, w)
}

func (s *Shell) cmdDevice(args []string, w io.Writer) error {
	// Accept both "device 8086 100e" and "device 8086:100e".
	if len(args) == 1 {
		args = strings.SplitN(args[0], ":", 2)
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: device <vid> <did>")
	}
	vid, err := ParseID16(args[0])
	if err != nil {
		return err
	}
	did, err := ParseID16(args[1])
	if err != nil {
		return err
	}
	return RunDevice(s.tbl, vid, did, s.format, w)
}

func (s *Shell) cmdClass(args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: class <cid>")
	}
	cid, err := ParseID8(args[0])
	if err != nil {
		return err
	}
	return RunClass(s.tbl, cid, s.format, w)
}

func (s *Shell) cmdSubclass(args []string, w io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: subclass <cid> <sid>")
	}
	cid, err := ParseID8(args[0])
	if err != nil {
		return err
	}
	sid, err := ParseID8(args[1])
	if err != nil {
		return err
	}
	return RunSubclass(s.tbl, cid, sid, s.format, w)
}

func (s *Shell) cmdFormat(args []string, w io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(w, s.format)
		return nil
	}
	switch args[0] {
	case FormatText, FormatYAML:
		s.format = args[0]
		return nil
	default:
		return fmt.Errorf("unknown format: %s", args[0])
	}
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `
PCI ID Lookup Commands:

  vendor <vid>          - Show a vendor and its devices
  device <vid> <did>    - Show a device, its vendor and subsystems
  class <cid>           - Show a class and its subclasses
  subclass <cid> <sid>  - Show a subclass, its class and prog-ifs
  list vendors|classes  - List all top-level records
  info                  - Show counts and fingerprint
  format [text|yaml]    - Show or set the output format
  help                  - Show this help
  quit                  - Exit

Ids are hex, with or without a 0x prefix.`)
}

// Stderr returns a writer that coordinates with the readline prompt.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

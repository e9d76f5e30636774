package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// ErrNotFound is returned when a looked-up id is not in the table.
var ErrNotFound = errors.New("not found")

// ParseID16 parses a 16-bit hex id, with or without a 0x prefix.
func ParseID16(s string) (uint16, error) {
	v, err := parseID(s, 16)
	return uint16(v), err
}

// ParseID8 parses an 8-bit hex id, with or without a 0x prefix.
func ParseID8(s string) (uint8, error) {
	v, err := parseID(s, 8)
	return uint8(v), err
}

func parseID(s string, bits int) (uint64, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if h == "" || strings.ContainsAny(h, "+-_") {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	v, err := strconv.ParseUint(h, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: want %d-bit hex", s, bits)
	}
	return v, nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RunVendor prints a vendor and its devices.
func RunVendor(tbl *pciids.Table, vid uint16, format string, w io.Writer) error {
	v, ok := tbl.Vendor(vid)
	if !ok {
		return fmt.Errorf("vendor %04x: %w", vid, ErrNotFound)
	}
	if format == FormatYAML {
		return encodeYAML(w, v)
	}

	fmt.Fprintln(w, v)
	for d := range v.Devices() {
		fmt.Fprintf(w, "  %04x  %s\n", d.ID(), d.Name())
	}
	return nil
}

// RunDevice prints a device, its vendor and its subsystems.
func RunDevice(tbl *pciids.Table, vid, did uint16, format string, w io.Writer) error {
	d, ok := tbl.Device(vid, did)
	if !ok {
		return fmt.Errorf("device %04x:%04x: %w", vid, did, ErrNotFound)
	}
	if format == FormatYAML {
		return encodeYAML(w, d)
	}

	fmt.Fprintf(w, "Vendor: %s\n", d.Vendor())
	fmt.Fprintf(w, "Device: %s\n", d)
	for s := range d.SubSystems() {
		fmt.Fprintf(w, "  %s\n", s)
	}
	return nil
}

// RunClass prints a class and its subclasses.
func RunClass(tbl *pciids.Table, cid uint8, format string, w io.Writer) error {
	c, ok := tbl.Class(cid)
	if !ok {
		return fmt.Errorf("class %02x: %w", cid, ErrNotFound)
	}
	if format == FormatYAML {
		return encodeYAML(w, c)
	}

	fmt.Fprintln(w, c)
	for s := range c.Subclasses() {
		fmt.Fprintf(w, "  %02x  %s\n", s.ID(), s.Name())
	}
	return nil
}

// RunSubclass prints a subclass, its class and its programming interfaces.
func RunSubclass(tbl *pciids.Table, cid, sid uint8, format string, w io.Writer) error {
	s, ok := tbl.Subclass(cid, sid)
	if !ok {
		return fmt.Errorf("subclass %02x%02x: %w", cid, sid, ErrNotFound)
	}
	if format == FormatYAML {
		return encodeYAML(w, s)
	}

	fmt.Fprintf(w, "Class:    %s\n", s.Class())
	fmt.Fprintf(w, "Subclass: %s\n", s)
	for p := range s.ProgIfs() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}

// RunList prints all vendors or all classes in ascending id order.
func RunList(tbl *pciids.Table, what string, w io.Writer) error {
	switch what {
	case "vendors":
		for v := range tbl.Vendors() {
			fmt.Fprintln(w, v)
		}
	case "classes":
		for c := range tbl.Classes() {
			fmt.Fprintln(w, c)
		}
	default:
		return fmt.Errorf("unknown list target %q (want vendors or classes)", what)
	}
	return nil
}

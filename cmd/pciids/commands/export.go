package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// Export formats.
const (
	ExportYAML = "yaml"
	ExportCBOR = "cbor"
)

// RunExport writes the whole table in the given format to output, or to
// stdout when output is empty.
func RunExport(tbl *pciids.Table, format, output string, stdout io.Writer) error {
	switch format {
	case ExportYAML, ExportCBOR:
	default:
		return fmt.Errorf("unknown format: %s (supported: yaml, cbor)", format)
	}

	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == ExportYAML {
		return tbl.ExportYAML(w)
	}

	data, err := tbl.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RunSnapshot writes a CBOR snapshot of the table to output.
func RunSnapshot(tbl *pciids.Table, output string) error {
	if output == "" {
		return errors.New("output file required")
	}
	data, err := tbl.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// RunInfo prints the table source, its record counts and its fingerprint.
func RunInfo(tbl *pciids.Table, source string, w io.Writer) error {
	fp, err := tbl.Fingerprint()
	if err != nil {
		return fmt.Errorf("computing fingerprint: %w", err)
	}
	st := tbl.Stats()

	fmt.Fprintf(w, "Source:      %s\n", source)
	fmt.Fprintf(w, "Fingerprint: %s\n", fp)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Vendors:     %d\n", st.Vendors)
	fmt.Fprintf(w, "  Devices:     %d\n", st.Devices)
	fmt.Fprintf(w, "  Subsystems:  %d\n", st.SubSystems)
	fmt.Fprintf(w, "  Classes:     %d\n", st.Classes)
	fmt.Fprintf(w, "  Subclasses:  %d\n", st.Subclasses)
	fmt.Fprintf(w, "  Prog-ifs:    %d\n", st.ProgIfs)
	return nil
}

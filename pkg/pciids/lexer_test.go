package pciids

import (
	"fmt"
	"strings"
	"testing"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want record
	}{
		{"empty", "", record{kind: kindSkip}},
		{"comment", "# List of PCI ID's", record{kind: kindSkip}},
		{"indented comment marker", "#\tdevice  device_name", record{kind: kindSkip}},

		{"vendor", "14c3  MEDIATEK Corp.", record{kind: kindVendor, id: 0x14c3, name: "MEDIATEK Corp."}},
		{"vendor upper hex", "ABCD  Upper", record{kind: kindVendor, id: 0xabcd, name: "Upper"}},
		{"device", "\t000a  SafeXcel 1841", record{kind: kindDevice, id: 0x000a, name: "SafeXcel 1841"}},
		{"subsystem", "\t\t1043 8432  P8P67 and other motherboards",
			record{kind: kindSubsystem, id: 0x1043, sub: 0x8432, name: "P8P67 and other motherboards"}},
		{"class", "C 08  Generic system peripheral", record{kind: kindClass, id: 0x08, name: "Generic system peripheral"}},
		{"class ff", "C ff  Unassigned class", record{kind: kindClass, id: 0xff, name: "Unassigned class"}},
		{"subclass", "\t00  Serial controller", record{kind: kindSubclass, id: 0x00, name: "Serial controller"}},
		{"prog-if", "\t\tfe  IEEE1284 Target", record{kind: kindProgIf, id: 0xfe, name: "IEEE1284 Target"}},
		{"name with double spaces", "1234  A  B", record{kind: kindVendor, id: 0x1234, name: "A  B"}},

		// Vendor ids starting with c/C are vendors, not classes.
		{"vendor starting with C", "C0de  Code Corp", record{kind: kindVendor, id: 0xc0de, name: "Code Corp"}},
		{"vendor starting with c", "cafe  Cafe Inc", record{kind: kindVendor, id: 0xcafe, name: "Cafe Inc"}},

		{"single space separator", "14c3 MEDIATEK", record{kind: kindUnrecognized}},
		{"three spaces", "14c3   MEDIATEK", record{kind: kindUnrecognized}},
		{"tab separator", "14c3\tMEDIATEK", record{kind: kindUnrecognized}},
		{"empty vendor name", "14c3  ", record{kind: kindVendor, id: 0x14c3}},
		{"empty device name", "\t0001  ", record{kind: kindDevice, id: 0x0001}},
		{"empty subsystem name", "\t\t1043 8432  ", record{kind: kindSubsystem, id: 0x1043, sub: 0x8432}},
		{"empty class name", "C 08  ", record{kind: kindClass, id: 0x08}},
		{"empty prog-if name", "\t\tfe  ", record{kind: kindProgIf, id: 0xfe}},
		{"separator cut short", "14c3 ", record{kind: kindUnrecognized}},
		{"short vendor id", "14c  MEDIATEK", record{kind: kindUnrecognized}},
		{"long vendor id", "14c30  MEDIATEK", record{kind: kindUnrecognized}},
		{"non-hex vendor id", "14g3  MEDIATEK", record{kind: kindUnrecognized}},
		{"sign in id", "+4c3  MEDIATEK", record{kind: kindUnrecognized}},
		{"three-digit device", "\t00a  x", record{kind: kindUnrecognized}},
		{"class without space", "C08  Generic", record{kind: kindUnrecognized}},
		{"class one digit", "C 8  Generic", record{kind: kindUnrecognized}},
		{"class single space", "C 08 Generic", record{kind: kindUnrecognized}},
		{"lowercase class prefix", "c 08  Generic", record{kind: kindUnrecognized}},
		{"subsystem missing space", "\t\t10438432  Board", record{kind: kindUnrecognized}},
		{"subsystem double space between ids", "\t\t1043  8432  Board", record{kind: kindUnrecognized}},
		{"three tabs", "\t\t\t00  Deep", record{kind: kindUnrecognized}},
		{"whitespace only", "   ", record{kind: kindUnrecognized}},
		{"language trailer", "L 0009  English", record{kind: kindUnrecognized}},
		{"hid trailer", "HID 22  Unknown", record{kind: kindUnrecognized}},
		{"country code trailer", "R 00  Not supported", record{kind: kindUnrecognized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyLine(tt.line)
			if got != tt.want {
				t.Errorf("classifyLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLine_HexRoundTrip(t *testing.T) {
	for _, line := range []string{
		"0000  Gammagraphx, Inc.",
		"001c  PEAK-System Technik GmbH",
		"14c3  MEDIATEK Corp.",
		"ffff  Illegal Vendor ID",
		"C 00  Unclassified device",
		"C 0c  Serial bus controller",
		"C ff  Unassigned class",
	} {
		rec := classifyLine(line)
		var digits, formatted string
		switch rec.kind {
		case kindVendor:
			digits, formatted = line[:4], fmt.Sprintf("%04x", rec.id)
		case kindClass:
			digits, formatted = line[2:4], fmt.Sprintf("%02x", rec.id)
		default:
			t.Fatalf("classifyLine(%q) kind = %v", line, rec.kind)
		}
		if !strings.EqualFold(formatted, digits) {
			t.Errorf("%q: reformatted id %q, want %q", line, formatted, digits)
		}
	}
}

func TestRecordKindString(t *testing.T) {
	tests := map[recordKind]string{
		kindUnrecognized: "unrecognized",
		kindSkip:         "skip",
		kindVendor:       "vendor",
		kindDevice:       "device",
		kindSubsystem:    "subsystem",
		kindClass:        "class",
		kindSubclass:     "subclass",
		kindProgIf:       "prog-if",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

package pciids

import (
	"strconv"
	"strings"
)

// recordKind identifies which grammar a line matched.
type recordKind uint8

const (
	kindUnrecognized recordKind = iota
	kindSkip
	kindVendor
	kindDevice
	kindSubsystem
	kindClass
	kindSubclass
	kindProgIf
)

func (k recordKind) String() string {
	switch k {
	case kindSkip:
		return "skip"
	case kindVendor:
		return "vendor"
	case kindDevice:
		return "device"
	case kindSubsystem:
		return "subsystem"
	case kindClass:
		return "class"
	case kindSubclass:
		return "subclass"
	case kindProgIf:
		return "prog-if"
	default:
		return "unrecognized"
	}
}

// record is one classified line. For subsystem lines id holds the subvendor
// and sub the subdevice; other kinds only use id.
type record struct {
	kind recordKind
	id   uint16
	sub  uint16
	name string
}

const (
	// nameSep separates ids from the record name.
	nameSep = "  "
	// classPrefix introduces a class line.
	classPrefix = "C "
)

var (
	skipRecord         = record{kind: kindSkip}
	unrecognizedRecord = record{kind: kindUnrecognized}
)

// classifyLine matches a single line, without its terminator, against the
// record grammars. A line matches at most one of them.
func classifyLine(line string) record {
	if line == "" || line[0] == '#' {
		return skipRecord
	}

	switch {
	case strings.HasPrefix(line, "\t\t"):
		rest := line[2:]
		if sv, sd, name, ok := matchSubsystem(rest); ok {
			return record{kind: kindSubsystem, id: sv, sub: sd, name: name}
		}
		if id, name, ok := matchID(rest, 2); ok {
			return record{kind: kindProgIf, id: id, name: name}
		}

	case line[0] == '\t':
		rest := line[1:]
		if id, name, ok := matchID(rest, 4); ok {
			return record{kind: kindDevice, id: id, name: name}
		}
		if id, name, ok := matchID(rest, 2); ok {
			return record{kind: kindSubclass, id: id, name: name}
		}

	case strings.HasPrefix(line, classPrefix):
		if id, name, ok := matchID(line[len(classPrefix):], 2); ok {
			return record{kind: kindClass, id: id, name: name}
		}

	default:
		if id, name, ok := matchID(line, 4); ok {
			return record{kind: kindVendor, id: id, name: name}
		}
	}

	return unrecognizedRecord
}

// matchID matches "<width hex digits><two spaces><name>".
func matchID(s string, width int) (uint16, string, bool) {
	if len(s) < width+len(nameSep) {
		return 0, "", false
	}
	id, ok := parseHex(s[:width])
	if !ok || s[width:width+len(nameSep)] != nameSep {
		return 0, "", false
	}
	name := s[width+len(nameSep):]
	if !validName(name) {
		return 0, "", false
	}
	return id, name, true
}

// matchSubsystem matches "<4 hex> <4 hex><two spaces><name>".
func matchSubsystem(s string) (uint16, uint16, string, bool) {
	const idsLen = 4 + 1 + 4
	if len(s) < idsLen+len(nameSep) || s[4] != ' ' {
		return 0, 0, "", false
	}
	sv, ok := parseHex(s[:4])
	if !ok {
		return 0, 0, "", false
	}
	sd, ok := parseHex(s[5:9])
	if !ok || s[idsLen:idsLen+len(nameSep)] != nameSep {
		return 0, 0, "", false
	}
	name := s[idsLen+len(nameSep):]
	if !validName(name) {
		return 0, 0, "", false
	}
	return sv, sd, name, true
}

// parseHex parses a slice that must consist solely of hex digits.
// ParseUint with base 16 rejects signs, prefixes and underscores.
func parseHex(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// validName accepts the rest of the line as the name. The name may be
// empty but must not start with whitespace.
func validName(name string) bool {
	return name == "" || (name[0] != ' ' && name[0] != '\t')
}

package pciids

import (
	"errors"
	"fmt"
)

// vendorTrack assembles one vendor at a time. A vendor is finalized when the
// next vendor line starts or when the input ends.
type vendorTrack struct {
	open    bool
	line    int // line the open vendor started on
	current Vendor

	// cursor is the id of the most recent device of the open vendor.
	cursor    uint16
	hasCursor bool
}

// classTrack is the class/subclass/prog-if counterpart of vendorTrack.
type classTrack struct {
	open    bool
	line    int
	current Class

	cursor    uint8
	hasCursor bool
}

// builder runs both tracks over a stream of classified lines.
type builder struct {
	vt vendorTrack
	ct classTrack

	vendors     []Vendor
	classes     []Class
	seenVendors map[uint16]struct{}
	seenClasses [256]bool

	lines   int  // lines consumed, including skipped ones
	stopped bool // an unrecognized line ended the recognized region
}

func newBuilder() *builder {
	return &builder{seenVendors: make(map[uint16]struct{})}
}

// consume feeds the next line to the builder. It returns false once the
// builder has stopped and ignores all further input.
func (b *builder) consume(line string) (bool, error) {
	if b.stopped {
		return false, nil
	}
	b.lines++

	rec := classifyLine(line)
	var err error
	switch rec.kind {
	case kindSkip:
	case kindVendor:
		err = b.openVendor(rec)
	case kindDevice:
		err = b.addDevice(rec)
	case kindSubsystem:
		err = b.addSubsystem(rec)
	case kindClass:
		err = b.openClass(rec)
	case kindSubclass:
		err = b.addSubclass(rec)
	case kindProgIf:
		err = b.addProgIf(rec)
	default:
		b.stopped = true
		return false, nil
	}
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			err = &ParseError{Line: b.lines, Err: err}
		}
		return false, err
	}
	return true, nil
}

// finish finalizes any vendor or class still open and returns the
// finalized records in encounter order.
func (b *builder) finish() ([]Vendor, []Class, error) {
	if err := b.closeVendor(); err != nil {
		return nil, nil, err
	}
	if err := b.closeClass(); err != nil {
		return nil, nil, err
	}
	return b.vendors, b.classes, nil
}

func (b *builder) openVendor(rec record) error {
	if err := b.closeVendor(); err != nil {
		return err
	}
	b.vt = vendorTrack{
		open:    true,
		line:    b.lines,
		current: Vendor{id: rec.id, name: rec.name},
	}
	return nil
}

func (b *builder) closeVendor() error {
	if !b.vt.open {
		return nil
	}
	v := b.vt.current
	if _, dup := b.seenVendors[v.id]; dup {
		return &ParseError{Line: b.vt.line, Err: fmt.Errorf("%w: %04x", ErrDuplicateVendor, v.id)}
	}
	b.seenVendors[v.id] = struct{}{}
	b.vendors = append(b.vendors, v)
	b.vt = vendorTrack{}
	return nil
}

func (b *builder) addDevice(rec record) error {
	if !b.vt.open {
		return ErrNoOpenVendor
	}
	v := &b.vt.current
	v.devices = append(v.devices, Device{vendorID: v.id, id: rec.id, name: rec.name})
	b.vt.cursor = rec.id
	b.vt.hasCursor = true
	return nil
}

func (b *builder) addSubsystem(rec record) error {
	if !b.vt.open {
		return ErrNoOpenVendor
	}
	d := b.currentDevice()
	if d == nil {
		return ErrNoCurrentDevice
	}
	d.subsystems = append(d.subsystems, SubSystem{subvendor: rec.id, subdevice: rec.sub, name: rec.name})
	return nil
}

// currentDevice returns the first device of the open vendor whose id equals
// the cursor, or nil.
func (b *builder) currentDevice() *Device {
	if !b.vt.hasCursor {
		return nil
	}
	devices := b.vt.current.devices
	for i := range devices {
		if devices[i].id == b.vt.cursor {
			return &devices[i]
		}
	}
	return nil
}

func (b *builder) openClass(rec record) error {
	if err := b.closeClass(); err != nil {
		return err
	}
	b.ct = classTrack{
		open:    true,
		line:    b.lines,
		current: Class{id: uint8(rec.id), name: rec.name},
	}
	return nil
}

func (b *builder) closeClass() error {
	if !b.ct.open {
		return nil
	}
	c := b.ct.current
	if b.seenClasses[c.id] {
		return &ParseError{Line: b.ct.line, Err: fmt.Errorf("%w: %02x", ErrDuplicateClass, c.id)}
	}
	b.seenClasses[c.id] = true
	b.classes = append(b.classes, c)
	b.ct = classTrack{}
	return nil
}

func (b *builder) addSubclass(rec record) error {
	if !b.ct.open {
		return ErrNoOpenClass
	}
	c := &b.ct.current
	c.subclasses = append(c.subclasses, Subclass{classID: c.id, id: uint8(rec.id), name: rec.name})
	b.ct.cursor = uint8(rec.id)
	b.ct.hasCursor = true
	return nil
}

func (b *builder) addProgIf(rec record) error {
	if !b.ct.open {
		return ErrNoOpenClass
	}
	s := b.currentSubclass()
	if s == nil {
		return ErrNoCurrentSubclass
	}
	s.progIfs = append(s.progIfs, ProgIf{id: uint8(rec.id), name: rec.name})
	return nil
}

func (b *builder) currentSubclass() *Subclass {
	if !b.ct.hasCursor {
		return nil
	}
	subclasses := b.ct.current.subclasses
	for i := range subclasses {
		if subclasses[i].id == b.ct.cursor {
			return &subclasses[i]
		}
	}
	return nil
}

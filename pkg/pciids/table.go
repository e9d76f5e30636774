package pciids

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Table is an immutable, indexed PCI ID database. All methods are safe for
// concurrent use.
//
// Lookups return pointers into the table's own storage, so the same record
// is returned on every call. Records are read-only: never assign through a
// returned pointer (for example *v = Vendor{}). Doing so changes the record
// for every user of the table, including [Default].
type Table struct {
	vendors     []Vendor // sorted by id
	vendorIndex map[uint16]int32

	classes []Class // sorted by id
	// classIndex maps a class id to its position in classes plus one;
	// zero marks an absent class.
	classIndex [256]uint16

	stats Stats

	// payload memoizes the canonical snapshot encoding.
	payload func() ([]byte, error)
}

// Stats counts the records of a table.
type Stats struct {
	Vendors    int
	Devices    int
	SubSystems int
	Classes    int
	Subclasses int
	ProgIfs    int
}

// newTable indexes finalized vendor and class records. The records are
// taken over by the table. Top-level ids must be unique and every
// back-reference must resolve; otherwise no table is returned.
func newTable(vendors []Vendor, classes []Class) (*Table, error) {
	t := &Table{
		vendors:     slices.Clone(vendors),
		vendorIndex: make(map[uint16]int32, len(vendors)),
		classes:     slices.Clone(classes),
	}
	slices.SortFunc(t.vendors, func(a, b Vendor) int { return cmp.Compare(a.id, b.id) })
	slices.SortFunc(t.classes, func(a, b Class) int { return cmp.Compare(a.id, b.id) })

	for i := range t.vendors {
		v := &t.vendors[i]
		if _, dup := t.vendorIndex[v.id]; dup {
			return nil, fmt.Errorf("%w: %04x", ErrDuplicateVendor, v.id)
		}
		t.vendorIndex[v.id] = int32(i)
	}
	for i := range t.classes {
		c := &t.classes[i]
		if t.classIndex[c.id] != 0 {
			return nil, fmt.Errorf("%w: %02x", ErrDuplicateClass, c.id)
		}
		t.classIndex[c.id] = uint16(i + 1)
	}

	if err := t.link(); err != nil {
		return nil, err
	}
	t.payload = sync.OnceValues(t.encodePayload)
	return t, nil
}

// link attaches children to the table and checks that every
// back-reference resolves to the record that lists the child.
func (t *Table) link() error {
	for i := range t.vendors {
		v := &t.vendors[i]
		t.stats.Vendors++
		for j := range v.devices {
			d := &v.devices[j]
			d.tbl = t
			if owner, ok := t.Vendor(d.vendorID); !ok || owner != v {
				return fmt.Errorf("%w: device %04x of vendor %04x points at vendor %04x",
					ErrDanglingReference, d.id, v.id, d.vendorID)
			}
			t.stats.Devices++
			t.stats.SubSystems += len(d.subsystems)
		}
	}
	for i := range t.classes {
		c := &t.classes[i]
		t.stats.Classes++
		for j := range c.subclasses {
			s := &c.subclasses[j]
			s.tbl = t
			if owner, ok := t.Class(s.classID); !ok || owner != c {
				return fmt.Errorf("%w: subclass %02x of class %02x points at class %02x",
					ErrDanglingReference, s.id, c.id, s.classID)
			}
			t.stats.Subclasses++
			t.stats.ProgIfs += len(s.progIfs)
		}
	}
	return nil
}

// Vendor returns the vendor with the given id.
func (t *Table) Vendor(id uint16) (*Vendor, bool) {
	i, ok := t.vendorIndex[id]
	if !ok {
		return nil, false
	}
	return &t.vendors[i], true
}

// Class returns the class with the given id.
func (t *Table) Class(id uint8) (*Class, bool) {
	i := t.classIndex[id]
	if i == 0 {
		return nil, false
	}
	return &t.classes[i-1], true
}

// Device returns the first device with the given id listed under the given
// vendor.
func (t *Table) Device(vendorID, deviceID uint16) (*Device, bool) {
	v, ok := t.Vendor(vendorID)
	if !ok {
		return nil, false
	}
	return v.Device(deviceID)
}

// Subclass returns the first subclass with the given id listed under the
// given class.
func (t *Table) Subclass(classID, subclassID uint8) (*Subclass, bool) {
	c, ok := t.Class(classID)
	if !ok {
		return nil, false
	}
	return c.Subclass(subclassID)
}

// Vendors returns all vendors in ascending id order.
func (t *Table) Vendors() iter.Seq[*Vendor] {
	return func(yield func(*Vendor) bool) {
		for i := range t.vendors {
			if !yield(&t.vendors[i]) {
				return
			}
		}
	}
}

// Classes returns all classes in ascending id order.
func (t *Table) Classes() iter.Seq[*Class] {
	return func(yield func(*Class) bool) {
		for i := range t.classes {
			if !yield(&t.classes[i]) {
				return
			}
		}
	}
}

// Stats returns the record counts of the table.
func (t *Table) Stats() Stats { return t.stats }

package pciids

import (
	"fmt"
	"iter"
)

// Class is a PCI device class with a unique 8-bit id.
//
// A *Class points into its [Table] and must be treated as read-only.
type Class struct {
	id         uint8
	name       string
	subclasses []Subclass
}

// ID returns the class id.
func (c *Class) ID() uint8 { return c.id }

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Subclasses returns the class's subclasses in source order.
func (c *Class) Subclasses() iter.Seq[*Subclass] {
	return func(yield func(*Subclass) bool) {
		for i := range c.subclasses {
			if !yield(&c.subclasses[i]) {
				return
			}
		}
	}
}

// NumSubclasses returns the number of subclasses listed under the class.
func (c *Class) NumSubclasses() int { return len(c.subclasses) }

// Subclass returns the first subclass with the given id.
func (c *Class) Subclass(id uint8) (*Subclass, bool) {
	for i := range c.subclasses {
		if c.subclasses[i].id == id {
			return &c.subclasses[i], true
		}
	}
	return nil, false
}

func (c *Class) String() string {
	return fmt.Sprintf("%02x %s", c.id, c.name)
}

// Subclass refines a class. Subclass ids are unique within a class.
// A *Subclass must be treated as read-only.
type Subclass struct {
	tbl     *Table
	classID uint8
	id      uint8
	name    string
	progIfs []ProgIf
}

// ID returns the subclass id.
func (s *Subclass) ID() uint8 { return s.id }

// Name returns the subclass name.
func (s *Subclass) Name() string { return s.name }

// ClassID returns the id of the class the subclass belongs to.
func (s *Subclass) ClassID() uint8 { return s.classID }

// CIDSID returns the (class id, subclass id) pair of the subclass.
func (s *Subclass) CIDSID() (uint8, uint8) { return s.classID, s.id }

// Class returns the class the subclass belongs to. Like [Device.Vendor] it
// panics if the table cannot resolve the stored class id.
func (s *Subclass) Class() *Class {
	c, ok := s.tbl.Class(s.classID)
	if !ok {
		panic(fmt.Sprintf("pciids: subclass %02x references missing class %02x", s.id, s.classID))
	}
	return c
}

// ProgIfs returns the subclass's programming interfaces in source order.
func (s *Subclass) ProgIfs() iter.Seq[*ProgIf] {
	return func(yield func(*ProgIf) bool) {
		for i := range s.progIfs {
			if !yield(&s.progIfs[i]) {
				return
			}
		}
	}
}

// NumProgIfs returns the number of programming interfaces listed under the
// subclass.
func (s *Subclass) NumProgIfs() int { return len(s.progIfs) }

// ProgIf returns the first programming interface with the given id.
func (s *Subclass) ProgIf(id uint8) (*ProgIf, bool) {
	for i := range s.progIfs {
		if s.progIfs[i].id == id {
			return &s.progIfs[i], true
		}
	}
	return nil, false
}

func (s *Subclass) String() string {
	return fmt.Sprintf("%02x%02x %s", s.classID, s.id, s.name)
}

// ProgIf is a programming interface of a subclass.
type ProgIf struct {
	id   uint8
	name string
}

// ID returns the programming interface id.
func (p *ProgIf) ID() uint8 { return p.id }

// Name returns the programming interface name.
func (p *ProgIf) Name() string { return p.name }

func (p *ProgIf) String() string {
	return fmt.Sprintf("%02x %s", p.id, p.name)
}

package pciids

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAML views of the records. Ids are rendered as fixed-width hex strings.

type yamlTable struct {
	Vendors []yamlVendor `yaml:"vendors"`
	Classes []yamlClass  `yaml:"classes"`
}

type yamlVendor struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Devices []yamlDevice `yaml:"devices,omitempty"`
}

type yamlDevice struct {
	Vendor     string          `yaml:"vendor,omitempty"`
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	SubSystems []yamlSubSystem `yaml:"subsystems,omitempty"`
}

type yamlSubSystem struct {
	Subvendor string `yaml:"subvendor"`
	Subdevice string `yaml:"subdevice"`
	Name      string `yaml:"name"`
}

type yamlClass struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Subclasses []yamlSubclass `yaml:"subclasses,omitempty"`
}

type yamlSubclass struct {
	Class   string       `yaml:"class,omitempty"`
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	ProgIfs []yamlProgIf `yaml:"prog_ifs,omitempty"`
}

type yamlProgIf struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func hex16(v uint16) string { return fmt.Sprintf("0x%04x", v) }
func hex8(v uint8) string   { return fmt.Sprintf("0x%02x", v) }

func (v *Vendor) yamlView() yamlVendor {
	out := yamlVendor{ID: hex16(v.id), Name: v.name}
	for i := range v.devices {
		out.Devices = append(out.Devices, v.devices[i].yamlView(false))
	}
	return out
}

func (d *Device) yamlView(withVendor bool) yamlDevice {
	out := yamlDevice{ID: hex16(d.id), Name: d.name}
	if withVendor {
		out.Vendor = hex16(d.vendorID)
	}
	for _, s := range d.subsystems {
		out.SubSystems = append(out.SubSystems, yamlSubSystem{
			Subvendor: hex16(s.subvendor),
			Subdevice: hex16(s.subdevice),
			Name:      s.name,
		})
	}
	return out
}

func (c *Class) yamlView() yamlClass {
	out := yamlClass{ID: hex8(c.id), Name: c.name}
	for i := range c.subclasses {
		out.Subclasses = append(out.Subclasses, c.subclasses[i].yamlView(false))
	}
	return out
}

func (s *Subclass) yamlView(withClass bool) yamlSubclass {
	out := yamlSubclass{ID: hex8(s.id), Name: s.name}
	if withClass {
		out.Class = hex8(s.classID)
	}
	for _, p := range s.progIfs {
		out.ProgIfs = append(out.ProgIfs, yamlProgIf{ID: hex8(p.id), Name: p.name})
	}
	return out
}

// MarshalYAML implements yaml.Marshaler.
func (v *Vendor) MarshalYAML() (any, error) { return v.yamlView(), nil }

// MarshalYAML implements yaml.Marshaler. The vendor id is included.
func (d *Device) MarshalYAML() (any, error) { return d.yamlView(true), nil }

// MarshalYAML implements yaml.Marshaler.
func (c *Class) MarshalYAML() (any, error) { return c.yamlView(), nil }

// MarshalYAML implements yaml.Marshaler. The class id is included.
func (s *Subclass) MarshalYAML() (any, error) { return s.yamlView(true), nil }

// ExportYAML writes the whole table as a YAML document.
func (t *Table) ExportYAML(w io.Writer) error {
	doc := yamlTable{}
	for i := range t.vendors {
		doc.Vendors = append(doc.Vendors, t.vendors[i].yamlView())
	}
	for i := range t.classes {
		doc.Classes = append(doc.Classes, t.classes[i].yamlView())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

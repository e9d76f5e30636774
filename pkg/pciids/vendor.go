package pciids

import (
	"fmt"
	"iter"
)

// Vendor is a PCI device vendor. Every vendor has a unique 16-bit id, a
// name, and the devices listed under it in source order.
//
// A *Vendor points into its [Table] and must be treated as read-only.
type Vendor struct {
	id      uint16
	name    string
	devices []Device
}

// ID returns the vendor id.
func (v *Vendor) ID() uint16 { return v.id }

// Name returns the vendor name.
func (v *Vendor) Name() string { return v.name }

// Devices returns the vendor's devices in source order.
func (v *Vendor) Devices() iter.Seq[*Device] {
	return func(yield func(*Device) bool) {
		for i := range v.devices {
			if !yield(&v.devices[i]) {
				return
			}
		}
	}
}

// NumDevices returns the number of devices listed under the vendor.
func (v *Vendor) NumDevices() int { return len(v.devices) }

// Device returns the first device with the given id.
func (v *Vendor) Device(id uint16) (*Device, bool) {
	for i := range v.devices {
		if v.devices[i].id == id {
			return &v.devices[i], true
		}
	}
	return nil, false
}

func (v *Vendor) String() string {
	return fmt.Sprintf("%04x %s", v.id, v.name)
}

// Device is a product of a vendor. Device ids are unique within a vendor
// but repeat across vendors. A *Device must be treated as read-only.
type Device struct {
	tbl        *Table
	vendorID   uint16
	id         uint16
	name       string
	subsystems []SubSystem
}

// ID returns the device id.
func (d *Device) ID() uint16 { return d.id }

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// VendorID returns the id of the vendor the device belongs to.
func (d *Device) VendorID() uint16 { return d.vendorID }

// VIDPID returns the (vendor id, device id) pair of the device.
func (d *Device) VIDPID() (uint16, uint16) { return d.vendorID, d.id }

// Vendor returns the vendor the device belongs to. The lookup goes through
// the owning table's index. A device whose vendor cannot be resolved means
// the table was built incorrectly, and Vendor panics.
func (d *Device) Vendor() *Vendor {
	v, ok := d.tbl.Vendor(d.vendorID)
	if !ok {
		panic(fmt.Sprintf("pciids: device %04x references missing vendor %04x", d.id, d.vendorID))
	}
	return v
}

// SubSystems returns the device's subsystems in source order.
//
// The database lists subsystems for few devices; an empty sequence does not
// mean the device has none.
func (d *Device) SubSystems() iter.Seq[*SubSystem] {
	return func(yield func(*SubSystem) bool) {
		for i := range d.subsystems {
			if !yield(&d.subsystems[i]) {
				return
			}
		}
	}
}

// NumSubSystems returns the number of subsystems listed under the device.
func (d *Device) NumSubSystems() int { return len(d.subsystems) }

// SubSystem returns the first subsystem with the given subvendor and
// subdevice ids.
func (d *Device) SubSystem(subvendor, subdevice uint16) (*SubSystem, bool) {
	for i := range d.subsystems {
		s := &d.subsystems[i]
		if s.subvendor == subvendor && s.subdevice == subdevice {
			return s, true
		}
	}
	return nil, false
}

func (d *Device) String() string {
	return fmt.Sprintf("%04x:%04x %s", d.vendorID, d.id, d.name)
}

// SubSystem is a card variant built on a device, identified by its
// subvendor and subdevice ids.
type SubSystem struct {
	subvendor uint16
	subdevice uint16
	name      string
}

// Subvendor returns the subsystem vendor id.
func (s *SubSystem) Subvendor() uint16 { return s.subvendor }

// Subdevice returns the subsystem device id.
func (s *SubSystem) Subdevice() uint16 { return s.subdevice }

// Name returns the subsystem name.
func (s *SubSystem) Name() string { return s.name }

func (s *SubSystem) String() string {
	return fmt.Sprintf("%04x:%04x %s", s.subvendor, s.subdevice, s.name)
}

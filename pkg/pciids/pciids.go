package pciids

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:generate go run ../../cmd/pciids-gen -update -ids data/pci.ids -output .

//go:embed data/pci.ids
var embeddedDB []byte

// defaultTable builds the embedded database exactly once, on first use.
var defaultTable = sync.OnceValue(func() *Table {
	t, err := ParseBytes(embeddedDB)
	if err != nil {
		panic(fmt.Sprintf("pciids: embedded database: %v", err))
	}
	return t
})

// Default returns the table built from the embedded database.
func Default() *Table {
	return defaultTable()
}

// EmbeddedDB returns a copy of the embedded pci.ids text.
func EmbeddedDB() []byte {
	out := make([]byte, len(embeddedDB))
	copy(out, embeddedDB)
	return out
}

// LookupVendor returns the vendor with the given id from the default table.
func LookupVendor(id uint16) (*Vendor, bool) {
	return Default().Vendor(id)
}

// LookupDevice returns a device of the default table by vendor and device id.
func LookupDevice(vendorID, deviceID uint16) (*Device, bool) {
	return Default().Device(vendorID, deviceID)
}

// LookupClass returns the class with the given id from the default table.
func LookupClass(id uint8) (*Class, bool) {
	return Default().Class(id)
}

// LookupSubclass returns a subclass of the default table by class and
// subclass id.
func LookupSubclass(classID, subclassID uint8) (*Subclass, bool) {
	return Default().Subclass(classID, subclassID)
}

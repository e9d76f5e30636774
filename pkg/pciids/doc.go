// Package pciids provides an immutable, indexed view of the PCI ID database.
//
// The database is the line-oriented pci.ids text maintained by the PCI ID
// Repository. It lists vendors with their devices and subsystems, followed by
// device classes with their subclasses and programming interfaces.
//
// # Basic Usage
//
// The package embeds a copy of the database and builds it on first use:
//
//	v, ok := pciids.LookupVendor(0x8086)
//	if ok {
//	    for d := range v.Devices() {
//	        fmt.Printf("%04x:%04x %s\n", v.ID(), d.ID(), d.Name())
//	    }
//	}
//
// Other copies of the database are parsed with [Parse], [ParseFile] or
// [ParseBytes]. Each returns an independent [Table].
//
// # Back-references
//
// A [Device] knows its vendor id and a [Subclass] knows its class id. The
// parent record is resolved through the owning table's index when
// [Device.Vendor] or [Subclass.Class] is called, so records never hold
// pointers to their parents.
//
// # Immutability
//
// A [Table] never changes after it is built. Lookups and iterators hand out
// pointers into the table's storage rather than copies. The record types
// have no exported fields or setters, but Go cannot stop a caller from
// overwriting a whole record through its pointer. Never do that: the change
// would be visible to every other user of the table, including [Default].
//
// # Parsing Rules
//
// Only the vendor and class sections are recognized. Parsing stops silently
// at the first line that matches none of the six record grammars, which is
// how trailer sections of related databases (languages, country codes, HID
// usages) are ignored. A child record without an open parent is a fatal
// [*ParseError].
//
// # Snapshots
//
// A built table can be serialized with [Table.MarshalBinary] into a compact,
// deterministic CBOR snapshot and restored with [UnmarshalSnapshot].
// Identical input text always yields identical snapshot bytes.
package pciids

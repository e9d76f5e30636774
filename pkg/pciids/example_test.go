package pciids_test

import (
	"fmt"
	"strings"

	"github.com/pciids/pciids-go/pkg/pciids"
)

func ExampleLookupVendor() {
	v, ok := pciids.LookupVendor(0x16ae)
	if !ok {
		return
	}
	fmt.Println(v.Name())
	for d := range v.Devices() {
		fmt.Printf("  %04x %s\n", d.ID(), d.Name())
	}
	// Output:
	// SafeNet Inc
	//   000a SafeXcel 1841
	//   1141 SafeXcel-1141
	//   1841 SafeXcel 1842
}

func ExampleLookupSubclass() {
	s, ok := pciids.LookupSubclass(pciids.ClassCommunicationController, 0x00)
	if !ok {
		return
	}
	fmt.Printf("%s / %s\n", s.Class().Name(), s.Name())
	// Output:
	// Communication controller / Serial controller
}

func ExampleParse() {
	db := "1234  Example Vendor\n\t0001  Example Device\n"
	tbl, err := pciids.Parse(strings.NewReader(db))
	if err != nil {
		fmt.Println(err)
		return
	}
	d, _ := tbl.Device(0x1234, 0x0001)
	fmt.Println(d.Vendor().Name(), "-", d.Name())
	// Output:
	// Example Vendor - Example Device
}

// Package version reports the build version of the pciids tools.
package version

import (
	"runtime/debug"
)

// Version is set at link time:
//
//	go build -ldflags "-X github.com/pciids/pciids-go/pkg/version.Version=v1.2.3"
var Version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the link-time version, else the main module version
// recorded by the go tool, else "devel".
func String() string {
	if Version != "" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "devel"
}

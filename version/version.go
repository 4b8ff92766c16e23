// Package version reports the daemon's build version.
package version

import "runtime/debug"

// Version may be set at build time:
//
//	go build -ldflags="-X github.com/andaru/acs/version.Version=v1.0.0" ./cmd/acsd
var Version = ""

func init() {
	if Version != "" {
		return
	}
	Version = "dev"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}

// Product is the product token sent in HTTP Server headers
func Product() string { return "acsd/" + Version }

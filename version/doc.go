// Package version reports the build version of rxkit binaries.
//
// Values are set at link time and fall back to the VCS stamp Go embeds:
//
//	go build -ldflags "-X github.com/kbukum/rxkit/version.Version=1.2.0" ./cmd/rxdemo
package version

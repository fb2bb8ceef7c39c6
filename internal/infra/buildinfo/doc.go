// Package buildinfo reports the version of the running tlsedge binary.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/tlsedge-go/internal/infra/buildinfo.Version=v1.0.0 \
//	    -X github.com/yndnr/tlsedge-go/internal/infra/buildinfo.Commit=abc123"
//
// Values left unset fall back to what the Go toolchain embedded in the
// binary (module version, vcs.revision, vcs.time).
package buildinfo

// Package farm is the root of the farm toolkit. It carries version
// information; the computational packages live under pkg/ and the I/O
// implementations under internal/.
package farm

var (
	// Version of the farm toolkit, set by the build.
	Version = "v0.1.0"
	// Build timestamp, set by the build.
	Build = "n/a"
)

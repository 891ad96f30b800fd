//go:build amd64

package memchr

import "golang.org/x/sys/cpu"

// On amd64 the unrolled 32-byte variant wins once the CPU has cheap
// unaligned loads, which every SSE4.2-capable part does. Older CPUs keep
// the eight-byte variant.
func init() {
	if cpu.X86.HasSSE42 || cpu.X86.HasAVX2 {
		index = memchrWide
	}
}

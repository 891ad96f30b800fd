// Package memchr provides accelerated single-byte search for prefilters.
//
// The implementation uses the SWAR (SIMD Within A Register) technique:
// eight haystack bytes are examined per uint64 operation instead of one at a
// time. On amd64 a wider, unrolled variant is selected at startup based on
// CPU features; other platforms always use the eight-byte variant.
//
// The engine uses this to skip ahead to candidate match positions when a
// pattern has a mandatory first byte.
package memchr

import (
	"encoding/binary"
	"math/bits"
)

// index is the active implementation, chosen at package init.
var index = memchrSWAR

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if needle is not present.
func Memchr(haystack []byte, needle byte) int {
	return index(haystack, needle)
}

const (
	lowBytes  = 0x0101010101010101
	highBytes = 0x8080808080808080
)

// broadcast replicates b into every byte of a uint64.
func broadcast(b byte) uint64 {
	return lowBytes * uint64(b)
}

// zeroByteMask reports, via its high bits, which bytes of w are zero.
// Standard zero-in-word formula: (w - 0x01..01) & ^w & 0x80..80.
func zeroByteMask(w uint64) uint64 {
	return (w - lowBytes) & ^w & highBytes
}

// memchrSWAR scans eight bytes per iteration.
func memchrSWAR(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 8 {
		return memchrScalar(haystack, needle)
	}

	mask := broadcast(needle)
	i := 0
	for ; i+8 <= n; i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		if m := zeroByteMask(w); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	// Tail: re-read the final eight bytes, overlapping the last full block.
	w := binary.LittleEndian.Uint64(haystack[n-8:]) ^ mask
	if m := zeroByteMask(w); m != 0 {
		return n - 8 + bits.TrailingZeros64(m)/8
	}
	return -1
}

// memchrWide is the unrolled variant: four uint64 lanes (32 bytes) per
// iteration. Worth it only on CPUs with fast unaligned loads, so it is
// enabled by the amd64 dispatch.
func memchrWide(haystack []byte, needle byte) int {
	n := len(haystack)
	if n < 32 {
		return memchrSWAR(haystack, needle)
	}

	mask := broadcast(needle)
	i := 0
	for ; i+32 <= n; i += 32 {
		w0 := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		w1 := binary.LittleEndian.Uint64(haystack[i+8:]) ^ mask
		w2 := binary.LittleEndian.Uint64(haystack[i+16:]) ^ mask
		w3 := binary.LittleEndian.Uint64(haystack[i+24:]) ^ mask

		if zeroByteMask(w0)|zeroByteMask(w1)|zeroByteMask(w2)|zeroByteMask(w3) != 0 {
			if m := zeroByteMask(w0); m != 0 {
				return i + bits.TrailingZeros64(m)/8
			}
			if m := zeroByteMask(w1); m != 0 {
				return i + 8 + bits.TrailingZeros64(m)/8
			}
			if m := zeroByteMask(w2); m != 0 {
				return i + 16 + bits.TrailingZeros64(m)/8
			}
			m := zeroByteMask(w3)
			return i + 24 + bits.TrailingZeros64(m)/8
		}
	}
	if i < n {
		if pos := memchrSWAR(haystack[i:], needle); pos != -1 {
			return i + pos
		}
	}
	return -1
}

// memchrScalar is the byte-at-a-time fallback for short inputs.
func memchrScalar(haystack []byte, needle byte) int {
	for i, b := range haystack {
		if b == needle {
			return i
		}
	}
	return -1
}

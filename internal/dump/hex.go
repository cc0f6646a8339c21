// Package dump renders hex + ASCII panels of VM memory for the
// --memory report section.
//
// It is adapted from the teacher's internal/encoding package, which
// serializes object code to Intel-Hex records for storage on disk. This
// package instead formats a live in-memory byte slice for a human to
// read, one 16-byte row at a time:
//
//	00000010  68 65 6c 6c 6f 20 77 6f  72 6c 64 00 00 00 00 00  |hello world.....|
package dump

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const bytesPerRow = 16

// Hex renders bytes as a multi-line hex + ASCII dump, with addresses
// offset by base (so a stack or heap region can report dumps in terms of
// its own virtual addresses rather than a zero-based slice index).
func Hex(base uint32, bytes []byte) string {
	if len(bytes) == 0 {
		return ""
	}

	var b strings.Builder

	for off := 0; off < len(bytes); off += bytesPerRow {
		end := off + bytesPerRow
		if end > len(bytes) {
			end = len(bytes)
		}

		row := bytes[off:end]

		fmt.Fprintf(&b, "%08x  ", base+uint32(off))

		for i := 0; i < bytesPerRow; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%s ", hex.EncodeToString(row[i:i+1]))
			} else {
				b.WriteString("   ")
			}

			if i == 7 {
				b.WriteByte(' ')
			}
		}

		b.WriteString(" |")

		for _, c := range row {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}

		b.WriteString("|\n")
	}

	return b.String()
}

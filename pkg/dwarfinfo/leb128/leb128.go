// Package leb128 decodes the Little Endian Base 128 integers DWARF uses
// for location expressions (DWARF v4 standard, section 7.6). Adapted from
// delve's pkg/dwarf/util decoders, trimmed to the decode-only subset the
// DWARF adapter's frame-base offset parsing needs.
package leb128

import "bytes"

// DecodeULEB128 decodes an unsigned Little Endian Base 128 number.
func DecodeULEB128(buf *bytes.Buffer) (uint64, uint32) {
	var result uint64
	var shift uint64
	var length uint32

	if buf.Len() == 0 {
		return 0, 0
	}

	for {
		b, err := buf.ReadByte()
		if err != nil {
			return result, length
		}
		length++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, length
}

// DecodeSLEB128 decodes a signed Little Endian Base 128 number.
func DecodeSLEB128(buf *bytes.Buffer) (int64, uint32) {
	var b byte
	var err error
	var result int64
	var shift uint64
	var length uint32

	if buf.Len() == 0 {
		return 0, 0
	}

	for {
		b, err = buf.ReadByte()
		if err != nil {
			return result, length
		}
		length++
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}

	if shift < 8*uint64(length) && b&0x40 > 0 {
		result |= -(1 << shift)
	}
	return result, length
}

package wire

import "encoding/binary"

// ReadEncodedLength reads a MySQL int<lenenc> from the front of b, returning
// the decoded value and the number of bytes it occupied.
// https://dev.mysql.com/doc/dev/mysql-server/latest/page_protocol_basic_dt_integers.html#sect_protocol_basic_dt_int_le
func ReadEncodedLength(b []byte) (uint64, int) {
	if len(b) == 0 {
		return 0, 1
	}
	switch b[0] {
	case 0xfb: // NULL
		return 0, 1
	case 0xfc:
		return uint64(b[1]) | uint64(b[2])<<8, 3
	case 0xfd:
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16, 4
	case 0xfe:
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16 |
			uint64(b[4])<<24 | uint64(b[5])<<32 | uint64(b[6])<<40 |
			uint64(b[7])<<48 | uint64(b[8])<<56, 9
	}
	return uint64(b[0]), 1
}

// LengthEncodeInteger encodes value as a MySQL int<lenenc>.
func LengthEncodeInteger(value uint64) []byte {
	switch {
	case value < 0xFB:
		return []byte{byte(value)}
	case value <= 0xFFFF:
		out := make([]byte, 3)
		out[0] = 0xFC
		binary.LittleEndian.PutUint16(out[1:], uint16(value))
		return out
	case value <= 0xFFFFFF:
		out := make([]byte, 4)
		out[0] = 0xFD
		out[1] = byte(value)
		out[2] = byte(value >> 8)
		out[3] = byte(value >> 16)
		return out
	default:
		out := make([]byte, 9)
		out[0] = 0xFE
		binary.LittleEndian.PutUint64(out[1:], value)
		return out
	}
}

// LengthEncodeString encodes str as a MySQL string<lenenc>: its byte length
// as an int<lenenc> prefix, followed by the raw bytes.
func LengthEncodeString(str string) []byte {
	return append(LengthEncodeInteger(uint64(len(str))), []byte(str)...)
}

// FixedLengthInteger truncates value's little-endian representation to the
// given byte width.
func FixedLengthInteger(value uint64, width int) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, value)
	return out[:width]
}

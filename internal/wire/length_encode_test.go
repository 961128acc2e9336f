package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthEncodeInteger(t *testing.T) {
	testCases := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{"1 byte", 100, []byte{100}},
		{"boundary below 0xFB", 250, []byte{250}},
		{"3 byte", 0x1170, []byte{0xFC, 0x70, 0x11}},
		{"4 byte", 0xFFFFFF - 1, []byte{0xFD, 0xFE, 0xFF, 0xFF}},
		{"9 byte", 1 << 30, []byte{0xFE, 0, 0, 0, 0x40, 0, 0, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LengthEncodeInteger(tc.value))
		})
	}
}

func TestReadEncodedLength_RoundTrips(t *testing.T) {
	values := []uint64{0, 1, 250, 70000, 1 << 24, 1 << 40}
	for _, v := range values {
		encoded := LengthEncodeInteger(v)
		got, n := ReadEncodedLength(encoded)
		assert.Equal(t, v, got)
		assert.Equal(t, len(encoded), n)
	}
}

func TestLengthEncodeString(t *testing.T) {
	got := LengthEncodeString("hi")
	assert.Equal(t, []byte{2, 'h', 'i'}, got)
}

func TestFixedLengthInteger(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0}, FixedLengthInteger(1, 4))
	assert.Equal(t, []byte{0xFF, 0xFF}, FixedLengthInteger(0xFFFF, 2))
}

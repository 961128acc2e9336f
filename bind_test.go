package mysqlbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindParameters_NullBitmap(t *testing.T) {
	params := []Parameter{
		{Name: "a", Type: ParamTypeLongLong, Value: int64(7)},
		{Name: "b", Type: ParamTypeNull, Value: nil},
	}
	got, err := BindParameters(params)
	require.NoError(t, err)

	// null bitmap: 1 byte for 2 params, bit 1 set (second param is NULL).
	assert.Equal(t, byte(0b10), got[0])
	// new_params_bind_flag
	assert.Equal(t, byte(1), got[1])
	// type block: two 2-byte entries.
	assert.Equal(t, byte(ParamTypeLongLong), got[2])
	assert.Equal(t, byte(ParamTypeNull), got[4])
	// only the non-null value is present after the type block.
	assert.Len(t, got, 1+1+2*2+8)
}

func TestBindParameters_Empty(t *testing.T) {
	got, err := BindParameters(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLiteralText(t *testing.T) {
	testCases := []struct {
		name string
		p    Parameter
		want string
	}{
		{"null value", Parameter{Type: ParamTypeVarString, Value: nil}, "NULL"},
		{"integer", Parameter{Type: ParamTypeLongLong, Value: int64(42)}, "42"},
		{"string escapes quotes", Parameter{Type: ParamTypeVarString, Value: "O'Brien"}, "'O\\'Brien'"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LiteralText(tc.p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewParameter_InfersType(t *testing.T) {
	assert.Equal(t, ParamTypeLongLong, NewParameter("n", 5).Type)
	assert.Equal(t, ParamTypeDouble, NewParameter("n", 1.5).Type)
	assert.Equal(t, ParamTypeVarString, NewParameter("n", "hi").Type)
	assert.Equal(t, ParamTypeNull, NewParameter("n", nil).Type)
}

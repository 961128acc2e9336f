package mysqlbatch

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/meoying/mysqlbatch/internal/wire"
)

// BindParameters encodes params as the binary-protocol parameter block that
// follows a COM_STMT_EXECUTE header: a NULL bitmap, a new_params_bind_flag
// byte, the per-parameter type block, then the values themselves — the same
// layout ExecuteStmtRequestParser parses in reverse.
//
// newParamsBindFlag is always written as 1: every Single/Batched execution
// re-sends types, since the prepared-statement handle may be reused across
// batches with differently-typed parameters.
func BindParameters(params []Parameter) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	w := wire.NewWriter()

	nullBitmap := make([]byte, (len(params)+7)/8)
	for i, p := range params {
		if p.Value == nil || p.Type == ParamTypeNull {
			nullBitmap[i/8] |= 1 << uint(i%8)
		}
	}
	if err := w.Write(nullBitmap); err != nil {
		return nil, err
	}
	if err := w.WriteByte(wire.NewParamsBindFlag); err != nil {
		return nil, err
	}
	for _, p := range params {
		if err := w.Write([]byte{byte(p.Type), 0}); err != nil {
			return nil, err
		}
	}
	for i, p := range params {
		if nullBitmap[i/8]&(1<<uint(i%8)) != 0 {
			continue
		}
		valueBytes, err := encodeParameterValue(p)
		if err != nil {
			return nil, fmt.Errorf("mysqlbatch: encode parameter %q: %w", p.Name, err)
		}
		if err := w.Write(valueBytes); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func encodeParameterValue(p Parameter) ([]byte, error) {
	switch p.Type {
	case ParamTypeLongLong:
		v, err := toInt64(p.Value)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, uint64(v))
		return out, nil
	case ParamTypeLong:
		v, err := toInt64(p.Value)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 4)
		binary.LittleEndian.PutUint32(out, uint32(v))
		return out, nil
	case ParamTypeDouble:
		v, err := toFloat64(p.Value)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 8)
		binary.LittleEndian.PutUint64(out, math.Float64bits(v))
		return out, nil
	case ParamTypeVarString, ParamTypeDecimal:
		return wire.LengthEncodeString(fmt.Sprintf("%v", p.Value)), nil
	case ParamTypeDate, ParamTypeDatetime:
		t, ok := p.Value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("mysqlbatch: parameter type %s requires a time.Time, got %T", p.Type, p.Value)
		}
		return wire.LengthEncodeString(t.Format("2006-01-02 15:04:05")), nil
	default:
		return nil, fmt.Errorf("mysqlbatch: %w: cannot encode parameter type %s", ErrUnsupported, p.Type)
	}
}

// LiteralText renders p as a SQL literal suitable for inline substitution by
// the Concatenated payload creator. Strings are single-quoted with embedded
// quotes and backslashes escaped; NULL values render as the bare keyword.
func LiteralText(p Parameter) (string, error) {
	if p.Value == nil || p.Type == ParamTypeNull {
		return "NULL", nil
	}
	switch p.Type {
	case ParamTypeLongLong, ParamTypeLong:
		v, err := toInt64(p.Value)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	case ParamTypeDouble, ParamTypeDecimal:
		v, err := toFloat64(p.Value)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case ParamTypeDate, ParamTypeDatetime:
		t, ok := p.Value.(time.Time)
		if !ok {
			return "", fmt.Errorf("mysqlbatch: parameter type %s requires a time.Time, got %T", p.Type, p.Value)
		}
		return "'" + t.Format("2006-01-02 15:04:05") + "'", nil
	default:
		return "'" + escapeLiteral(fmt.Sprintf("%v", p.Value)) + "'", nil
	}
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("mysqlbatch: cannot bind %T as an integer parameter", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("mysqlbatch: cannot bind %T as a floating-point parameter", v)
	}
}

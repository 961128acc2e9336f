package mysqlbatch

import (
	"fmt"
	"time"
)

// ParameterType is a closed enum mirroring the MySQL binary-protocol field
// types this core actually needs to bind. Values match the wire's
// column-type byte directly (see internal/protocol/mysql's MySQLType table
// in the surrounding codebase) so BindParameters can write them without a
// translation table.
type ParameterType uint8

const (
	ParamTypeDecimal   ParameterType = 0
	ParamTypeLongLong  ParameterType = 8
	ParamTypeDouble    ParameterType = 5
	ParamTypeLong      ParameterType = 3
	ParamTypeVarString ParameterType = 253
	ParamTypeDate      ParameterType = 10
	ParamTypeDatetime  ParameterType = 12
	ParamTypeNull      ParameterType = 6
)

func (t ParameterType) String() string {
	switch t {
	case ParamTypeDecimal:
		return "decimal"
	case ParamTypeLongLong:
		return "longlong"
	case ParamTypeDouble:
		return "double"
	case ParamTypeLong:
		return "long"
	case ParamTypeVarString:
		return "varstring"
	case ParamTypeDate:
		return "date"
	case ParamTypeDatetime:
		return "datetime"
	case ParamTypeNull:
		return "null"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Parameter is a single bound value for a BatchCommand: its name, its
// declared ParameterType, and its Go value. Name is not used to address the
// parameter: Concatenated substitution and Single/Batched binding are both
// positional, and Name only appears in encoding error messages.
type Parameter struct {
	Name  string
	Type  ParameterType
	Value any
}

// NewParameter builds a Parameter, inferring Type from the Go type of value
// when the caller doesn't need to pick one explicitly.
func NewParameter(name string, value any) Parameter {
	return Parameter{Name: name, Type: inferParameterType(value), Value: value}
}

func inferParameterType(value any) ParameterType {
	switch value.(type) {
	case nil:
		return ParamTypeNull
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return ParamTypeLongLong
	case float32, float64:
		return ParamTypeDouble
	case time.Time:
		return ParamTypeDatetime
	default:
		return ParamTypeVarString
	}
}

package format

// Value is a tagged union over the primitive scalar kinds the writer
// accepts. Numeric payloads share two storage slots; the tag decides which
// slot and which accessor are meaningful.
//
// A Value is immutable and cheap to copy; construct one with the typed
// factory functions below.
type Value struct {
	dataType DataType
	num      int64
	fnum     float64
}

// Int32Value creates an INT32 value.
func Int32Value(v int32) Value {
	return Value{dataType: TypeInt32, num: int64(v)}
}

// Int64Value creates an INT64 value.
func Int64Value(v int64) Value {
	return Value{dataType: TypeInt64, num: v}
}

// FloatValue creates a FLOAT value.
func FloatValue(v float32) Value {
	return Value{dataType: TypeFloat, fnum: float64(v)}
}

// DoubleValue creates a DOUBLE value.
func DoubleValue(v float64) Value {
	return Value{dataType: TypeDouble, fnum: v}
}

// DataType returns the tag of the value. The zero Value reports an invalid
// tag of 0 and matches no column type.
func (v Value) DataType() DataType {
	return v.dataType
}

// Int32 returns the INT32 payload. Meaningful only when DataType() is TypeInt32.
func (v Value) Int32() int32 {
	return int32(v.num) //nolint:gosec
}

// Int64 returns the INT64 payload. Meaningful only when DataType() is TypeInt64.
func (v Value) Int64() int64 {
	return v.num
}

// Float returns the FLOAT payload. Meaningful only when DataType() is TypeFloat.
// The float32 round-trips exactly through the float64 storage slot.
func (v Value) Float() float32 {
	return float32(v.fnum)
}

// Double returns the DOUBLE payload. Meaningful only when DataType() is TypeDouble.
func (v Value) Double() float64 {
	return v.fnum
}

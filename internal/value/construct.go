package value

// Integral is the set of Go integer types that widen into an Integer.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of Go floating point types that widen into a Real.
type Floating interface {
	~float32 | ~float64
}

// FromInt widens any integer to an Integer. Unsigned values above
// math.MaxInt64 wrap around, the same way a C cast to sqlite3_int64 does.
func FromInt[T Integral](v T) Integer {
	return Integer(int64(v))
}

// FromFloat widens a float32 or float64 to a Real.
func FromFloat[T Floating](v T) Real {
	return Real(float64(v))
}

// FromAny classifies an arbitrary Go value by its dynamic type:
//
//   - string: Text
//   - float32, float64: Real
//   - []byte: Blob
//   - any built-in integer type: Integer
//   - nil: Null
//   - a Value: returned unchanged
//
// Every other type, including bool, time.Time and named types, becomes Null
// without an error. This keeps callers that pass loosely typed parameter lists
// working, at the price of silently dropping unsupported data. Prefer the
// typed constructors when the type is known at compile time.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case string:
		return Text(x)
	case float32:
		return FromFloat(x)
	case float64:
		return Real(x)
	case []byte:
		return Blob(x)
	case int:
		return FromInt(x)
	case int8:
		return FromInt(x)
	case int16:
		return FromInt(x)
	case int32:
		return FromInt(x)
	case int64:
		return Integer(x)
	case uint:
		return FromInt(x)
	case uint8:
		return FromInt(x)
	case uint16:
		return FromInt(x)
	case uint32:
		return FromInt(x)
	case uint64:
		return FromInt(x)
	default:
		return Null{}
	}
}

// Values applies FromAny to each argument.
func Values(args ...any) []Value {
	values := make([]Value, len(args))
	for i, arg := range args {
		values[i] = FromAny(arg)
	}
	return values
}

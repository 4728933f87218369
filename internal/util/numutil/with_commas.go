package numutil

import "strconv"

// Signed is the set of signed integer types accepted by WithCommas.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// WithCommas returns a string representation of an integer with commas
// between thousands.
//
// Example:
//
//	12345 -> "12,345"
func WithCommas[T Signed](i T) string {
	digits := strconv.FormatInt(int64(i), 10)

	sign := ""
	if digits[0] == '-' {
		sign, digits = "-", digits[1:]
	}

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	res := []byte(sign + digits[:head])
	for pos := head; pos < len(digits); pos += 3 {
		res = append(res, ',')
		res = append(res, digits[pos:pos+3]...)
	}

	return string(res)
}

package responder

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingFloatPattern = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	leadingIntPattern   = regexp.MustCompile(`^([+-]?)(0[xX][0-9a-fA-F]*|\d+)`)
)

const leadingSpace = " \t\n\r\v\f"

// stringValue renders a decoded body value as the text a form field would
// carry. Absent values and objects render as "".
func stringValue(v any, present bool) string {
	if !present {
		return ""
	}

	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case []any:
		parts := make([]string, len(value))
		for i, item := range value {
			if item != nil {
				parts[i] = stringValue(item, true)
			}
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// parseLeadingFloat parses the longest decimal prefix of s. Anything that
// does not start with a number, or overflows, yields ok == false.
func parseLeadingFloat(s string) (float64, bool) {
	match := leadingFloatPattern.FindString(strings.TrimLeft(s, leadingSpace))
	if match == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// parseLeadingInt parses the longest integer prefix of s, discarding any
// fractional part or trailing characters. A 0x prefix selects base 16 and
// must be followed by at least one hex digit.
// Values beyond int64 are returned as float64.
func parseLeadingInt(s string) (any, bool) {
	m := leadingIntPattern.FindStringSubmatch(strings.TrimLeft(s, leadingSpace))
	if m == nil {
		return nil, false
	}

	sign, digits := m[1], m[2]

	base := 10
	if len(digits) >= 2 && (digits[1] == 'x' || digits[1] == 'X') {
		if len(digits) == 2 {
			return nil, false
		}
		base = 16
		digits = digits[2:]
	}

	if n, err := strconv.ParseInt(sign+digits, base, 64); err == nil {
		return n, true
	}

	n, ok := new(big.Int).SetString(sign+digits, base)
	if !ok {
		return nil, false
	}

	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return nil, false
	}

	return f, true
}

package responder

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidStatus is returned for values that cannot be sent as a status.
var ErrInvalidStatus = errors.New("invalid status code")

// ParseStatus converts a caller supplied status into a status code. Values
// are used as given, without checking that the code is a known one; only
// values the status line cannot carry (non-integers, outside 100..999) are
// rejected.
func ParseStatus(v any) (int, error) {
	var code float64

	switch value := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidStatus, value)
		}
		code = f
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidStatus, value)
		}
		code = f
	case float64:
		code = value
	case int:
		code = float64(value)
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidStatus, v)
	}

	if code != math.Trunc(code) || code < 100 || code > 999 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStatus, v)
	}

	return int(code), nil
}

// invalidStatus answers a request whose requested status is unusable.
func invalidStatus(err error) Response {
	return Error(http.StatusInternalServerError, err.Error())
}

package responder

import "encoding/json"

// Kind is the runtime classification of a JSON value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

// Classify returns the kind of a decoded JSON value. present reports
// whether the value's key existed at all.
func Classify(v any, present bool) Kind {
	if !present {
		return KindAbsent
	}

	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case json.Number, float64, int, int64:
		return KindNumber
	case bool:
		return KindBoolean
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindObject
	}
}

package validation

import (
	"fmt"
	"strconv"
)

// ValueOf converts a decoded scalar or slice into a Value.
//
// Booleans follow form-post conventions: true is "1", false is "".
// Nested slices are flattened one level by formatting each element.
func ValueOf(raw any) Value {
	switch x := raw.(type) {
	case Value:
		return x.Clone()
	case []string:
		return Sequence(x...)
	case []any:
		items := make([]string, 0, len(x))
		for _, e := range x {
			items = append(items, scalarString(e))
		}
		return Sequence(items...)
	default:
		return Scalar(scalarString(raw))
	}
}

func scalarString(raw any) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

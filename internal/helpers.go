package internal

import "strconv"

// ContextValue returns the value stored under key, or the zero value of T
// when it is missing or of a different type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param returns a typed URL parameter. Unparsable values yield the zero value.
func Param[T string | int | int64 | bool](c Context, name string) T {
	v, _ := parseAs[T](c.Param(name))
	return v
}

// QueryDefault returns a typed query parameter, or def when the parameter is
// empty or cannot be parsed.
func QueryDefault[T string | int | int64 | bool](c Context, name string, def T) T {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	if v, ok := parseAs[T](raw); ok {
		return v
	}
	return def
}

func parseAs[T string | int | int64 | bool](raw string) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return out, false
		}
		*p = n
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, false
		}
		*p = n
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, false
		}
		*p = b
	default:
		return out, false
	}
	return out, true
}

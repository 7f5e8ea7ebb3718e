package container

import (
	"strconv"
	"strings"
	"time"
)

// Column values come back from the driver as int64, float64, string, []byte
// or nil depending on the storage class of the cell; these helpers normalise
// them without failing on legacy containers that stored numbers as text.

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(string(x)), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return ""
}

func asBytes(v any) []byte {
	switch x := v.(type) {
	case []byte:
		return x
	case string:
		return []byte(x)
	}
	return nil
}

func asEpoch(v any) (*time.Time, bool) {
	sec, ok := asInt64(v)
	if !ok {
		return nil, false
	}
	ts := time.Unix(sec, 0).UTC()
	return &ts, true
}

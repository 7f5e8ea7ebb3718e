package account

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// registeredAtLayouts are the textual timestamp forms accepted for register_at.
var registeredAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

var (
	bytesType      = reflect.TypeOf([]byte(nil))
	timeType       = reflect.TypeOf(time.Time{})
	jsonNumberType = reflect.TypeOf(json.Number(""))
)

// DecodeFields decodes a loosely typed mapping (a JSON object, CLI input)
// into Fields. Numbers may arrive as floats, json.Number or numeric strings;
// a string auth_key is hex-decoded; register_at accepts epoch seconds, the
// layouts above or a time.Time. Unknown keys are ignored.
func DecodeFields(m map[string]any) (Fields, error) {
	var f Fields

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			hexBytesHook,
			timestampHook,
		),
	})
	if err != nil {
		return Fields{}, fmt.Errorf("build decoder: %w", err)
	}

	if err := dec.Decode(m); err != nil {
		return Fields{}, fmt.Errorf("decode account fields: %w", err)
	}
	return f, nil
}

func hexBytesHook(from, to reflect.Type, data any) (any, error) {
	if to != bytesType || from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(reflect.ValueOf(data).String())
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("auth key is not valid hex: %w", err)
	}
	return b, nil
}

func timestampHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}

	switch {
	case from == timeType:
		return data, nil
	case from == jsonNumberType:
		return epochFromString(data.(json.Number).String())
	case from.Kind() == reflect.String:
		s := strings.TrimSpace(reflect.ValueOf(data).String())
		for _, layout := range registeredAtLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return ts.UTC(), nil
			}
		}
		return epochFromString(s)
	case from.Kind() >= reflect.Int && from.Kind() <= reflect.Int64:
		return time.Unix(reflect.ValueOf(data).Int(), 0).UTC(), nil
	case from.Kind() >= reflect.Uint && from.Kind() <= reflect.Uint64:
		return time.Unix(int64(reflect.ValueOf(data).Uint()), 0).UTC(), nil
	case from.Kind() == reflect.Float32 || from.Kind() == reflect.Float64:
		return time.Unix(int64(reflect.ValueOf(data).Float()), 0).UTC(), nil
	}
	return data, nil
}

func epochFromString(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
		}
		sec = int64(f)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Package serial maps a closed set of named formats to codec pairs used to
// move values in and out of URL strings. A fully custom pair is the escape
// hatch for anything the built-in set cannot express.
//
// Raw URL values are *string: nil means the key is absent (null). Encode
// reports ok=false to mean "write null", which removes the key.
package serial

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog"
)

// logger receives diagnostics such as unknown-format warnings.
// Silent by default.
var logger = zerolog.Nop()

// SetLogger installs the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Codec is a pure serialize/deserialize pair. Encode returns the string
// form and ok=true, or ok=false for null. Decode receives the raw URL value
// (nil when absent) and returns the typed value, or nil for null.
//
// For every built-in format, Decode(Encode(v)) is value-equal to v across
// the format's domain.
type Codec struct {
	Encode func(v any) (string, bool)
	Decode func(raw *string) any
}

// Def is a codec definition accepted by Resolve: a built-in Format or a
// custom Codec.
type Def interface {
	resolve() Codec
}

// Format names one of the built-in codec pairs.
type Format int

const (
	// String passes values through as strings. Encode of nil is null;
	// anything else is its string form. Decode of a present value is the
	// string itself.
	String Format = iota

	// Number carries floating-point values as decimal strings. Encode of
	// nil or NaN is null. Decode yields float64; an unparsable value
	// yields NaN, which callers needing strictness must guard.
	Number

	// Int carries integers as decimal strings. Decode yields int; an
	// unparsable value yields 0.
	Int

	// Bool encodes true as "1" and false as "0". Encode of anything else
	// is null; Decode of anything else is nil.
	Bool

	// JSON round-trips any JSON-serializable structure via encoding/json.
	// Unlike the scalar formats, whose unparsable inputs yield sentinel
	// values, JSON is lenient: malformed input decodes to nil (null) with
	// a logged warning. Callers needing strict parse errors must supply a
	// Custom pair.
	JSON
)

// String returns the format's name.
func (f Format) String() string {
	switch f {
	case String:
		return "string"
	case Number:
		return "number"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// Resolve returns the codec for a definition.
func Resolve(def Def) Codec {
	if def == nil {
		return String.resolve()
	}
	return def.resolve()
}

// Custom wraps a caller-supplied pair as a Def. The pair is used verbatim;
// the round-trip law is the caller's responsibility.
func Custom(encode func(any) (string, bool), decode func(*string) any) Codec {
	return Codec{Encode: encode, Decode: decode}
}

func (c Codec) resolve() Codec { return c }

// ByName resolves a format by its string name. Unknown names fall back to
// String semantics with a logged warning; this is a diagnostic, not an
// error.
func ByName(name string) Format {
	switch name {
	case "string", "String":
		return String
	case "number", "Number", "float", "Float":
		return Number
	case "int", "Int", "integer", "Integer":
		return Int
	case "bool", "Bool", "boolean", "Boolean":
		return Bool
	case "json", "JSON", "object", "Object":
		return JSON
	default:
		logger.Warn().Str("format", name).Msg("unknown serializer format, using string semantics")
		return String
	}
}

// ForValue maps a sample value's dynamic type to the matching built-in
// format: strings to String, integers to Int, floats to Number, bools to
// Bool, and everything else to JSON.
func ForValue(sample any) Format {
	switch sample.(type) {
	case string:
		return String
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Number
	case bool:
		return Bool
	default:
		return JSON
	}
}

func (f Format) resolve() Codec {
	switch f {
	case Number:
		return Codec{Encode: encodeNumber, Decode: decodeNumber}
	case Int:
		return Codec{Encode: encodeInt, Decode: decodeInt}
	case Bool:
		return Codec{Encode: encodeBool, Decode: decodeBool}
	case JSON:
		return Codec{Encode: encodeJSON, Decode: decodeJSON}
	default:
		return Codec{Encode: encodeString, Decode: decodeString}
	}
}

func encodeString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func decodeString(raw *string) any {
	if raw == nil {
		return nil
	}
	return *raw
}

func encodeNumber(v any) (string, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func decodeNumber(raw *string) any {
	if raw == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func encodeInt(v any) (string, bool) {
	n, ok := toInt(v)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

func decodeInt(raw *string) any {
	if raw == nil {
		return nil
	}
	n, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

func encodeBool(v any) (string, bool) {
	b, ok := v.(bool)
	if !ok {
		return "", false
	}
	if b {
		return "1", true
	}
	return "0", true
}

func decodeBool(raw *string) any {
	if raw == nil {
		return nil
	}
	switch *raw {
	case "1":
		return true
	case "0":
		return false
	default:
		return nil
	}
}

func encodeJSON(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Msg("json encode failed, writing null")
		return "", false
	}
	return string(data), true
}

func decodeJSON(raw *string) any {
	if raw == nil {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		logger.Warn().Err(err).Msg("json decode failed, yielding null")
		return nil
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}

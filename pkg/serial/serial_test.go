package serial

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, f Format, v any) any {
	t.Helper()
	c := Resolve(f)
	raw, ok := c.Encode(v)
	require.True(t, ok, "Encode(%v) returned null", v)
	return c.Decode(&raw)
}

func TestStringCodec(t *testing.T) {
	c := Resolve(String)

	for _, s := range []string{"", "hello", "with spaces", "ünïcødé"} {
		assert.Equal(t, s, roundTrip(t, String, s))
	}

	_, ok := c.Encode(nil)
	assert.False(t, ok, "Encode(nil) must be null")
	assert.Nil(t, c.Decode(nil), "Decode(nil) must be null")

	// Non-string values take their string form.
	raw, ok := c.Encode(42)
	require.True(t, ok)
	assert.Equal(t, "42", raw)
}

func TestNumberCodec(t *testing.T) {
	c := Resolve(Number)

	for _, f := range []float64{0, 1, -1, 3.14, 1e9, -0.001} {
		assert.Equal(t, f, roundTrip(t, Number, f))
	}

	t.Run("NaNEncodesNull", func(t *testing.T) {
		_, ok := c.Encode(math.NaN())
		assert.False(t, ok)
	})

	t.Run("NilEncodesNull", func(t *testing.T) {
		_, ok := c.Encode(nil)
		assert.False(t, ok)
	})

	t.Run("UnparsableDecodesNaN", func(t *testing.T) {
		raw := "not a number"
		got := c.Decode(&raw)
		require.IsType(t, float64(0), got)
		assert.True(t, math.IsNaN(got.(float64)))
	})

	t.Run("IntInputsAccepted", func(t *testing.T) {
		raw, ok := c.Encode(7)
		require.True(t, ok)
		assert.Equal(t, "7", raw)
	})
}

func TestIntCodec(t *testing.T) {
	c := Resolve(Int)

	for _, n := range []int{0, 1, -1, 42, -99999} {
		assert.Equal(t, n, roundTrip(t, Int, n))
	}

	_, ok := c.Encode(nil)
	assert.False(t, ok)

	raw := "garbage"
	assert.Equal(t, 0, c.Decode(&raw), "unparsable integer decodes to 0")
}

func TestBoolCodec(t *testing.T) {
	c := Resolve(Bool)

	raw, ok := c.Encode(true)
	require.True(t, ok)
	assert.Equal(t, "1", raw)

	raw, ok = c.Encode(false)
	require.True(t, ok)
	assert.Equal(t, "0", raw)

	assert.Equal(t, true, roundTrip(t, Bool, true))
	assert.Equal(t, false, roundTrip(t, Bool, false))

	t.Run("NonBoolEncodesNull", func(t *testing.T) {
		_, ok := c.Encode("yes")
		assert.False(t, ok)
	})

	t.Run("OtherStringsDecodeNull", func(t *testing.T) {
		for _, s := range []string{"true", "yes", "2", ""} {
			s := s
			assert.Nil(t, c.Decode(&s), "Decode(%q)", s)
		}
	})
}

func TestJSONCodec(t *testing.T) {
	c := Resolve(JSON)

	value := map[string]any{
		"name": "widget",
		"qty":  float64(3),
		"tags": []any{"a", "b"},
	}
	assert.Equal(t, value, roundTrip(t, JSON, value))

	_, ok := c.Encode(nil)
	assert.False(t, ok)
	assert.Nil(t, c.Decode(nil))

	t.Run("MalformedDecodesNull", func(t *testing.T) {
		raw := "{not json"
		assert.Nil(t, c.Decode(&raw))
	})
}

func TestByName(t *testing.T) {
	cases := map[string]Format{
		"string":  String,
		"String":  String,
		"number":  Number,
		"Float":   Number,
		"int":     Int,
		"Integer": Int,
		"bool":    Bool,
		"Boolean": Bool,
		"json":    JSON,
		"Object":  JSON,
	}
	for name, want := range cases {
		assert.Equal(t, want, ByName(name), "ByName(%q)", name)
	}
}

func TestByNameUnknownFallsBackToString(t *testing.T) {
	SetLogger(zerolog.Nop())
	f := ByName("duration")
	assert.Equal(t, String, f)

	// Fallback carries full String semantics.
	c := Resolve(f)
	raw, ok := c.Encode("v")
	require.True(t, ok)
	assert.Equal(t, "v", raw)
}

func TestForValue(t *testing.T) {
	assert.Equal(t, String, ForValue("s"))
	assert.Equal(t, Int, ForValue(1))
	assert.Equal(t, Int, ForValue(int64(1)))
	assert.Equal(t, Number, ForValue(1.5))
	assert.Equal(t, Bool, ForValue(true))
	assert.Equal(t, JSON, ForValue(map[string]any{}))
	assert.Equal(t, JSON, ForValue([]string{"a"}))
}

func TestCustomCodec(t *testing.T) {
	// Comma-separated list codec supplied by the caller.
	c := Resolve(Custom(
		func(v any) (string, bool) {
			list, ok := v.([]string)
			if !ok || len(list) == 0 {
				return "", false
			}
			out := list[0]
			for _, s := range list[1:] {
				out += "," + s
			}
			return out, true
		},
		func(raw *string) any {
			if raw == nil {
				return nil
			}
			var out []string
			start := 0
			s := *raw
			for i := 0; i <= len(s); i++ {
				if i == len(s) || s[i] == ',' {
					out = append(out, s[start:i])
					start = i + 1
				}
			}
			return out
		},
	))

	raw, ok := c.Encode([]string{"go", "web"})
	require.True(t, ok)
	assert.Equal(t, "go,web", raw)
	assert.Equal(t, []string{"go", "web"}, c.Decode(&raw))
}

func TestResolveNilDefaultsToString(t *testing.T) {
	c := Resolve(nil)
	raw, ok := c.Encode("x")
	require.True(t, ok)
	assert.Equal(t, "x", raw)
}

package codec

import (
	"math/big"
	"reflect"
	"testing"
)

// roundTripCases lists one representative value per supported variant.
// expected is the value Parse must return (decoding normalizes integral
// numbers to int64 and fractional numbers to float64).
func roundTripCases() []struct {
	name     string
	value    any
	expected any
} {
	return []struct {
		name     string
		value    any
		expected any
	}{
		{"Null", nil, nil},
		{"Bool", true, true},
		{"Int", 123, int64(123)},
		{"NegativeInt", -42, int64(-42)},
		{"Float", 1.5, 1.5},
		{"String", "s", "s"},
		{"EmptyString", "", ""},
		{"BigInt", mustBigInt("12345678901234567890"), mustBigInt("12345678901234567890")},
		{"NegativeBigInt", mustBigInt("-98765432109876543210"), mustBigInt("-98765432109876543210")},
		{"Bytes", []byte{0x00, 0xFF}, []byte{0x00, 0xFF}},
		{"EmptyBytes", []byte{}, []byte{}},
		{"Array", []any{1, 2, 3}, []any{int64(1), int64(2), int64(3)}},
		{"Object", map[string]any{"a": 1}, map[string]any{"a": int64(1)}},
		{"NestedObject",
			map[string]any{"a": []any{true, "x"}, "b": map[string]any{"c": 2.5}},
			map[string]any{"a": []any{true, "x"}, "b": map[string]any{"c": 2.5}},
		},
	}
}

func mustBigInt(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid big integer literal: " + s)
	}
	return b
}

// TestRoundTrip tests that every supported value variant survives
// Serialize followed by Parse with its type intact
func TestRoundTrip(t *testing.T) {
	c := NewTaggedJSONCodec()

	for _, tc := range roundTripCases() {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Serialize(tc.value)
			if err != nil {
				t.Fatalf("failed to serialize %v: %v", tc.value, err)
			}

			result, err := c.Parse(data)
			if err != nil {
				t.Fatalf("failed to parse %s: %v", data, err)
			}

			if !equalValues(tc.expected, result) {
				t.Errorf("value doesn't match after round trip:\nOriginal: %#v\nResult:   %#v", tc.expected, result)
			}
		})
	}
}

// equalValues compares decoded values, treating *big.Int by Cmp
func equalValues(a, b any) bool {
	ab, aIsBig := a.(*big.Int)
	bb, bIsBig := b.(*big.Int)
	if aIsBig || bIsBig {
		return aIsBig && bIsBig && ab.Cmp(bb) == 0
	}
	return reflect.DeepEqual(a, b)
}

// TestTypeFidelity tests that tagged variants decode as their original
// type and not as the plain string or number they are transported as
func TestTypeFidelity(t *testing.T) {
	c := NewTaggedJSONCodec()

	t.Run("BigIntIsNotInt", func(t *testing.T) {
		data, err := c.Serialize(mustBigInt("99999999999999999999"))
		if err != nil {
			t.Fatal(err)
		}
		v, err := c.Parse(data)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := v.(*big.Int); !ok {
			t.Errorf("expected *big.Int, got %T", v)
		}
	})

	t.Run("BytesIsNotString", func(t *testing.T) {
		data, err := c.Serialize([]byte("hello"))
		if err != nil {
			t.Fatal(err)
		}
		v, err := c.Parse(data)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := v.([]byte); !ok {
			t.Errorf("expected []byte, got %T", v)
		}
	})

	t.Run("IntIsNotFloat", func(t *testing.T) {
		data, err := c.Serialize(7)
		if err != nil {
			t.Fatal(err)
		}
		v, err := c.Parse(data)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := v.(int64); !ok {
			t.Errorf("expected int64, got %T", v)
		}
	})
}

// TestTagCollision documents the known ambiguity: a caller string that
// looks like a tagged encoding decodes as the tagged type
func TestTagCollision(t *testing.T) {
	c := NewTaggedJSONCodec()

	data, err := c.Serialize("@bigint:42")
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := v.(*big.Int); !ok || b.Int64() != 42 {
		t.Errorf("expected the collision to decode as *big.Int 42, got %T %v", v, v)
	}
}

// TestNestedTagsUntouched tests that tags inside objects are not interpreted
func TestNestedTagsUntouched(t *testing.T) {
	c := NewTaggedJSONCodec()

	data, err := c.Serialize(map[string]any{"v": "@bytes:AAA="})
	if err != nil {
		t.Fatal(err)
	}
	v, err := c.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if s, ok := m["v"].(string); !ok || s != "@bytes:AAA=" {
		t.Errorf("nested tagged string was mangled: %#v", m["v"])
	}
}

// TestParseErrors tests malformed encodings
func TestParseErrors(t *testing.T) {
	c := NewTaggedJSONCodec()

	for _, data := range [][]byte{
		nil,
		[]byte(""),
		[]byte("{"),
		[]byte(`"@bigint:not-a-number"`),
		[]byte(`"@bytes:!!!"`),
	} {
		if _, err := c.Parse(data); err == nil {
			t.Errorf("expected error for encoding %q", data)
		}
	}
}

// TestSerializeUnsupported tests that non-serializable values are rejected
func TestSerializeUnsupported(t *testing.T) {
	c := NewTaggedJSONCodec()

	if _, err := c.Serialize(make(chan int)); err == nil {
		t.Error("expected error for channel value")
	}
	if _, err := c.Serialize(func() {}); err == nil {
		t.Error("expected error for function value")
	}
}

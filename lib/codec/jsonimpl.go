package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Sentinel tags distinguishing non-JSON-native values from ordinary strings
const (
	tagBigInt = "@bigint:"
	tagBytes  = "@bytes:"
)

// NewTaggedJSONCodec creates a new codec using json encoding with
// sentinel tags for big integers and byte blobs
func NewTaggedJSONCodec() IValueCodec {
	return &taggedJSONCodecImpl{}
}

// taggedJSONCodecImpl implements the IValueCodec interface using json encoding
type taggedJSONCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IValueCodec)
// --------------------------------------------------------------------------

func (c taggedJSONCodecImpl) Serialize(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return []byte("null"), nil
	case *big.Int:
		if v == nil {
			return []byte("null"), nil
		}
		return json.Marshal(tagBigInt + v.String())
	case big.Int:
		return json.Marshal(tagBigInt + v.String())
	case []byte:
		return json.Marshal(tagBytes + base64.StdEncoding.EncodeToString(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("value of type %T is not serializable: %w", value, err)
		}
		return data, nil
	}
}

func (c taggedJSONCodecImpl) Parse(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot parse empty encoding")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("malformed encoding: %w", err)
	}

	return normalize(raw, true)
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// normalize converts the generic json decoding result into the fixed set of
// decoded types. Sentinel tags are only interpreted at the top level since
// Serialize never tags nested values.
func normalize(v any, topLevel bool) (any, error) {
	switch val := v.(type) {
	case json.Number:
		return normalizeNumber(val)
	case string:
		if topLevel {
			return detagString(val)
		}
		return val, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			normalized, err := normalize(item, false)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			normalized, err := normalize(item, false)
			if err != nil {
				return nil, err
			}
			out[k] = normalized
		}
		return out, nil
	default:
		// nil and bool need no conversion
		return val, nil
	}
}

// normalizeNumber decodes a json number as int64 if it is integral,
// falling back to *big.Int on overflow and float64 otherwise.
func normalizeNumber(n json.Number) (any, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b, nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("malformed number %q: %w", s, err)
	}
	return f, nil
}

// detagString restores a tagged big integer or byte blob from its string form
func detagString(s string) (any, error) {
	switch {
	case strings.HasPrefix(s, tagBigInt):
		digits := strings.TrimPrefix(s, tagBigInt)
		b, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return nil, fmt.Errorf("malformed big integer encoding: %q", digits)
		}
		return b, nil
	case strings.HasPrefix(s, tagBytes):
		blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, tagBytes))
		if err != nil {
			return nil, fmt.Errorf("malformed byte blob encoding: %w", err)
		}
		return blob, nil
	default:
		return s, nil
	}
}

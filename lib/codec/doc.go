// Package codec implements type-preserving value serialization for rKV.
// Values of heterogeneous types (nil, booleans, numbers, strings, big
// integers, byte blobs and JSON-structured objects or arrays) are encoded
// into a wire-safe byte form and decoded back into the same type.
//
// The package focuses on:
//   - A single interface (IValueCodec) so alternative wire formats can be
//     plugged in without touching the manager
//   - A round-trip guarantee: Parse(Serialize(v)) yields v with its type intact
//
// Wire Format:
//
//	The default codec encodes values as JSON. Two value classes cannot be
//	represented in plain JSON without losing their type and are therefore
//	wrapped in sentinel-tagged JSON strings:
//
//	- Big integers (*big.Int) are encoded as "@bigint:<decimal digits>"
//	- Byte blobs ([]byte) are encoded as "@bytes:<base64>"
//
//	All other supported values are encoded as their natural JSON form.
//
// Decoded Types:
//
//	JSON is not self-describing enough to restore arbitrary Go types, so
//	decoding normalizes to a fixed set: nil, bool, int64 (integral numbers),
//	float64 (fractional numbers), string, *big.Int, []byte, []any and
//	map[string]any. Integral numbers of any input width (int, int32, uint16,
//	...) therefore round-trip as int64.
//
// Known Ambiguity:
//
//	A caller-supplied string that happens to start with one of the sentinel
//	tags is indistinguishable from a tagged value on read and will be decoded
//	as a big integer or byte blob. Callers that store untrusted strings and
//	need byte-level correctness should not rely on the tag scheme. Tags are
//	only applied (and only stripped) at the top level of a value, never
//	inside nested objects or arrays.
package codec

package codec

// IValueCodec is the interface for all value codecs.
// A value codec converts an arbitrary typed value into a wire-safe
// byte representation and back, preserving the original type.
type IValueCodec interface {
	// Serialize converts a value into its wire encoding.
	// It returns the encoded bytes and an error if the value is not supported.
	Serialize(value any) ([]byte, error)
	// Parse converts a wire encoding back into the value it was created from.
	// It returns the decoded value and an error if the encoding is malformed.
	Parse(data []byte) (any, error)
}

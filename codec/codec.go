// Package codec provides value (de)serialization for the distributed tier.
// A Codec must reconstruct the original value's Go type, not merely its
// structural shape, so that entries survive the process boundary intact.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

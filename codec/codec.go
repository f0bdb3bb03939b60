// Package codec provides the decode-from-bytes half of typed retrieval and
// matching encoders for callers that serialize structured values themselves.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

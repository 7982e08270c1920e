package channels

import "errors"

var (
	// ErrPointDecompression is returned when a public key does not decode to
	// a group element.
	ErrPointDecompression = errors.New("channels: point decompression failed")
	// ErrKeyEncoding is returned when bytes violate the key encoding contract.
	ErrKeyEncoding = errors.New("channels: invalid key encoding")
	// ErrHashSize is returned when a hash does not produce 64-byte digests.
	ErrHashSize = errors.New("channels: hash output must be 64 bytes")
)

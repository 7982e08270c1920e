// Package r255 adapts the circl Ristretto255 group to the fixed 32-byte
// encodings used by the channel key derivations.
package r255

import (
	"errors"
	"fmt"
	"hash"

	"github.com/cloudflare/circl/group"
	"github.com/gtank/ristretto255"
)

// Size is the length of an encoded scalar or element.
const Size = 32

// WideSize is the digest length reduced by HashToScalar.
const WideSize = 64

// ErrInvalidElement reports bytes that are not a canonical element encoding.
var ErrInvalidElement = errors.New("r255: invalid element encoding")

var g = group.Ristretto255

// ScalarFromBytes interprets b as a little-endian integer of at most WideSize
// bytes and reduces it modulo the group order in constant time.
func ScalarFromBytes(b []byte) (group.Scalar, error) {
	if len(b) > WideSize {
		return nil, fmt.Errorf("r255: scalar input is %d bytes, want at most %d", len(b), WideSize)
	}
	var wide [WideSize]byte
	copy(wide[:], b)
	defer clear(wide[:])

	rs := ristretto255.NewScalar().FromUniformBytes(wide[:])
	defer rs.Zero()
	var enc [Size]byte
	defer clear(enc[:])
	rs.Encode(enc[:0])

	s := g.NewScalar()
	if err := s.UnmarshalBinary(enc[:]); err != nil {
		return nil, fmt.Errorf("r255: load scalar: %w", err)
	}
	return s, nil
}

// HashToScalar hashes msg with newHash and reduces the little-endian digest
// modulo the group order. The digest must be WideSize bytes long.
func HashToScalar(newHash func() hash.Hash, msg []byte) (group.Scalar, error) {
	h := newHash()
	h.Write(msg)
	digest := h.Sum(nil)
	defer clear(digest)
	if len(digest) != WideSize {
		return nil, fmt.Errorf("r255: digest is %d bytes, want %d", len(digest), WideSize)
	}
	return ScalarFromBytes(digest)
}

// ScalarBytes returns the canonical little-endian encoding of s.
func ScalarBytes(s group.Scalar) ([Size]byte, error) {
	var out [Size]byte
	b, err := s.MarshalBinary()
	if err != nil {
		return out, fmt.Errorf("r255: marshal scalar: %w", err)
	}
	if len(b) != Size {
		return out, fmt.Errorf("r255: scalar encoding is %d bytes", len(b))
	}
	copy(out[:], b)
	clear(b)
	return out, nil
}

// Mul returns x*y mod the group order.
func Mul(x, y group.Scalar) group.Scalar {
	return g.NewScalar().Mul(x, y)
}

// Wipe sets s to zero.
func Wipe(s group.Scalar) {
	if s != nil {
		s.SetUint64(0)
	}
}

// BaseMul returns s*B.
func BaseMul(s group.Scalar) group.Element {
	return g.NewElement().MulGen(s)
}

// ScalarMul returns s*e.
func ScalarMul(e group.Element, s group.Scalar) group.Element {
	return g.NewElement().Mul(e, s)
}

// DecodeElement decompresses a 32-byte element encoding.
func DecodeElement(b []byte) (group.Element, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidElement, len(b))
	}
	e := g.NewElement()
	if err := e.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}
	return e, nil
}

// EncodeElement compresses e to its 32-byte encoding.
func EncodeElement(e group.Element) ([Size]byte, error) {
	var out [Size]byte
	b, err := e.MarshalBinaryCompress()
	if err != nil {
		return out, fmt.Errorf("r255: marshal element: %w", err)
	}
	if len(b) != Size {
		return out, fmt.Errorf("r255: element encoding is %d bytes", len(b))
	}
	copy(out[:], b)
	return out, nil
}

package channels

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/mr-tron/base58/base58"

	"github.com/pivaldi/channels/internal/r255"
)

// KeySize is the encoded size of both key kinds.
const KeySize = r255.Size

// SecretKey is a 32-byte secret. It is read as a scalar reduced modulo the
// group order whenever it takes part in arithmetic.
type SecretKey struct {
	b [KeySize]byte
}

// PublicKey is a compressed Ristretto255 element. It is only decompressed
// when used, so a PublicKey may hold bytes that fail to decode.
type PublicKey struct {
	b [KeySize]byte
}

// Keypair is a long-term secret key with its public key.
type Keypair struct {
	Secret *SecretKey
	Public PublicKey
}

// checkEncoding applies the key encoding contract: 32 bytes with the top bit
// of the last byte clear.
func checkEncoding(b []byte) error {
	if len(b) != KeySize {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrKeyEncoding, KeySize, len(b))
	}
	if b[KeySize-1]&0x80 != 0 {
		return fmt.Errorf("%w: reserved bit set", ErrKeyEncoding)
	}
	return nil
}

// NewSecretKey copies b into a SecretKey.
func NewSecretKey(b []byte) (*SecretKey, error) {
	if err := checkEncoding(b); err != nil {
		return nil, err
	}
	sk := &SecretKey{}
	copy(sk.b[:], b)
	return sk, nil
}

// ParseSecretKey decodes a base58 secret key.
func ParseSecretKey(s string) (*SecretKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyEncoding, err)
	}
	defer clear(b)
	return NewSecretKey(b)
}

// Bytes returns a copy of the key bytes.
func (k *SecretKey) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k.b[:])
	return out
}

// Encode returns the base58 form of the key.
func (k *SecretKey) Encode() string {
	return base58.Encode(k.b[:])
}

// Equal reports whether both keys hold the same bytes.
func (k *SecretKey) Equal(other *SecretKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.b == other.b
}

// Zero overwrites the key bytes.
func (k *SecretKey) Zero() {
	if k != nil {
		clear(k.b[:])
	}
}

// String never prints key material.
func (k *SecretKey) String() string {
	return "SecretKey(redacted)"
}

func (k *SecretKey) GoString() string {
	return k.String()
}

// NewPublicKey copies b into a PublicKey. The bytes are not decompressed.
func NewPublicKey(b []byte) (PublicKey, error) {
	var pk PublicKey
	if err := checkEncoding(b); err != nil {
		return pk, err
	}
	copy(pk.b[:], b)
	return pk, nil
}

// ParsePublicKey decodes a base58 public key.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrKeyEncoding, err)
	}
	return NewPublicKey(b)
}

// Bytes returns a copy of the key bytes.
func (k PublicKey) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k.b[:])
	return out
}

// Equal reports whether both keys hold the same bytes.
func (k PublicKey) Equal(other PublicKey) bool {
	return k.b == other.b
}

// String returns the base58 form of the key.
func (k PublicKey) String() string {
	return base58.Encode(k.b[:])
}

// GenerateKeypair draws a random secret scalar from r and derives its public
// key. A nil reader means crypto/rand.
func GenerateKeypair(r io.Reader) (*Keypair, error) {
	if r == nil {
		r = rand.Reader
	}
	var wide [r255.WideSize]byte
	defer clear(wide[:])
	if _, err := io.ReadFull(r, wide[:]); err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}

	s, err := r255.ScalarFromBytes(wide[:])
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w: %v", ErrKeyEncoding, err)
	}
	defer r255.Wipe(s)
	sk, err := encodeScalar(s)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	pk, err := DerivePublicKey(sk)
	if err != nil {
		sk.Zero()
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return &Keypair{Secret: sk, Public: pk}, nil
}

// Zero wipes the secret half of the keypair.
func (kp *Keypair) Zero() {
	if kp != nil {
		kp.Secret.Zero()
	}
}

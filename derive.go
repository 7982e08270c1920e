package channels

import (
	"fmt"
	"hash"

	"github.com/cloudflare/circl/group"

	"github.com/pivaldi/channels/internal/hashes"
	"github.com/pivaldi/channels/internal/r255"
)

// Deriver performs the hash-dependent derivations with a fixed 64-byte hash.
// It is immutable and safe for concurrent use.
type Deriver struct {
	newHash func() hash.Hash
}

// NewDeriver returns a Deriver hashing with newHash. The hash must produce
// 64-byte digests.
func NewDeriver(newHash func() hash.Hash) (*Deriver, error) {
	if newHash == nil {
		return nil, fmt.Errorf("%w: nil constructor", ErrHashSize)
	}
	if n := newHash().Size(); n != r255.WideSize {
		return nil, fmt.Errorf("%w: got %d", ErrHashSize, n)
	}
	return &Deriver{newHash: newHash}, nil
}

// NewDeriverByName returns a Deriver for a registered hash name such as
// "sha512" or "blake3-512".
func NewDeriverByName(name string) (*Deriver, error) {
	fn, err := hashes.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewDeriver(fn)
}

func (d *Deriver) hashToScalar(msg []byte) (group.Scalar, error) {
	s, err := r255.HashToScalar(d.newHash, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHashSize, err)
	}
	return s, nil
}

func (k *SecretKey) scalar() (group.Scalar, error) {
	s, err := r255.ScalarFromBytes(k.b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyEncoding, err)
	}
	return s, nil
}

func encodeScalar(s group.Scalar) (*SecretKey, error) {
	b, err := r255.ScalarBytes(s)
	defer clear(b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyEncoding, err)
	}
	return NewSecretKey(b[:])
}

func encodeElement(e group.Element) ([KeySize]byte, error) {
	b, err := r255.EncodeElement(e)
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrKeyEncoding, err)
	}
	return b, nil
}

func decodePublic(pk PublicKey) (group.Element, error) {
	e, err := r255.DecodeElement(pk.b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPointDecompression, err)
	}
	return e, nil
}

// DerivePublicKey returns the public key s*B of secret.
func DerivePublicKey(secret *SecretKey) (PublicKey, error) {
	s, err := secret.scalar()
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive public key: %w", err)
	}
	defer r255.Wipe(s)

	b, err := encodeElement(r255.BaseMul(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive public key: %w", err)
	}
	pk, err := NewPublicKey(b[:])
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive public key: %w", err)
	}
	return pk, nil
}

// DeriveChannelSecret returns H(context)*s, the secret key of the channel
// labelled context.
func (d *Deriver) DeriveChannelSecret(secret *SecretKey, context []byte) (*SecretKey, error) {
	s, err := secret.scalar()
	if err != nil {
		return nil, fmt.Errorf("derive channel secret: %w", err)
	}
	defer r255.Wipe(s)
	h, err := d.hashToScalar(context)
	if err != nil {
		return nil, fmt.Errorf("derive channel secret: %w", err)
	}
	defer r255.Wipe(h)

	cs := r255.Mul(h, s)
	defer r255.Wipe(cs)

	sk, err := encodeScalar(cs)
	if err != nil {
		return nil, fmt.Errorf("derive channel secret: %w", err)
	}
	return sk, nil
}

// DeriveChannelPublic returns H(context)*P, the public key of the channel
// labelled context. It matches the public key of DeriveChannelSecret for the
// secret behind public.
func (d *Deriver) DeriveChannelPublic(public PublicKey, context []byte) (PublicKey, error) {
	p, err := decodePublic(public)
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive channel public: %w", err)
	}
	h, err := d.hashToScalar(context)
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive channel public: %w", err)
	}
	defer r255.Wipe(h)

	b, err := encodeElement(r255.ScalarMul(p, h))
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive channel public: %w", err)
	}
	pk, err := NewPublicKey(b[:])
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive channel public: %w", err)
	}
	return pk, nil
}

// DeriveChannelKeypair derives the channel secret for context together with
// its public key.
func (d *Deriver) DeriveChannelKeypair(secret *SecretKey, context []byte) (*Keypair, error) {
	sk, err := d.DeriveChannelSecret(secret, context)
	if err != nil {
		return nil, err
	}
	pk, err := DerivePublicKey(sk)
	if err != nil {
		sk.Zero()
		return nil, err
	}
	return &Keypair{Secret: sk, Public: pk}, nil
}

// DeriveSharedSecret returns the Diffie-Hellman value s*P encoded as a
// SecretKey. Both parties of a pair obtain the same value.
func DeriveSharedSecret(secret *SecretKey, public PublicKey) (*SecretKey, error) {
	p, err := decodePublic(public)
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	s, err := secret.scalar()
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	defer r255.Wipe(s)

	b, err := encodeElement(r255.ScalarMul(p, s))
	defer clear(b[:])
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	sk, err := NewSecretKey(b[:])
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	return sk, nil
}

// SecretKeyFromSeed maps seed to a secret key with the Deriver's hash.
func (d *Deriver) SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	s, err := d.hashToScalar(seed)
	if err != nil {
		return nil, fmt.Errorf("secret key from seed: %w", err)
	}
	defer r255.Wipe(s)

	sk, err := encodeScalar(s)
	if err != nil {
		return nil, fmt.Errorf("secret key from seed: %w", err)
	}
	return sk, nil
}

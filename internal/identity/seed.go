package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/pivaldi/channels"
)

const SeedSize = 32

// FingerprintSize is the size of a public key fingerprint in bytes.
const FingerprintSize = 8

// GenerateSeed creates a new 32-byte random seed.
func GenerateSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("generate seed: %w", err)
	}
	return seed, nil
}

// SaveSeed writes a seed to file with 0600 permissions. Existing files are
// never overwritten.
func SaveSeed(path string, seed []byte) error {
	if len(seed) != SeedSize {
		return fmt.Errorf("invalid seed size: %d", len(seed))
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("save seed: %w", err)
	}
	if _, err := f.Write(seed); err != nil {
		f.Close()
		return fmt.Errorf("save seed: %w", err)
	}
	return f.Close()
}

// LoadSeed reads a seed from file.
func LoadSeed(path string) ([]byte, error) {
	seed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	if len(seed) != SeedSize {
		clear(seed)
		return nil, fmt.Errorf("invalid seed size: %d", len(seed))
	}
	return seed, nil
}

// Keys is the long-term identity derived from a seed.
type Keys struct {
	channels.Keypair
	Fingerprint [FingerprintSize]byte
}

// DeriveKeys derives the long-term keypair from a seed. The same seed and
// hash always give the same keys.
func DeriveKeys(d *channels.Deriver, seed []byte) (*Keys, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("invalid seed size: %d", len(seed))
	}

	sk, err := d.SecretKeyFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("derive secret key: %w", err)
	}
	pk, err := channels.DerivePublicKey(sk)
	if err != nil {
		sk.Zero()
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	keys := &Keys{Keypair: channels.Keypair{Secret: sk, Public: pk}}
	sum := sha256.Sum256(pk.Bytes())
	copy(keys.Fingerprint[:], sum[:FingerprintSize])
	return keys, nil
}

// Load reads the seed at path and derives its keys.
func Load(d *channels.Deriver, path string) (*Keys, error) {
	seed, err := LoadSeed(path)
	if err != nil {
		return nil, err
	}
	defer clear(seed)
	return DeriveKeys(d, seed)
}

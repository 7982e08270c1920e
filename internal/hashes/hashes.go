// Package hashes names the 64-byte hash functions that can drive channel
// derivation.
package hashes

import (
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Default is the hash used when none is configured.
const Default = "sha512"

// ErrUnknown is returned by Lookup for names not in the registry.
var ErrUnknown = errors.New("hashes: unknown hash")

var registry = map[string]func() hash.Hash{
	"sha512":      sha512.New,
	"sha3-512":    sha3.New512,
	"blake2b-512": newBlake2b512,
	"blake3-512":  newBlake3512,
}

func newBlake2b512() hash.Hash {
	// New512 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New512(nil)
	return h
}

func newBlake3512() hash.Hash {
	return blake3.New(64, nil)
}

// Lookup returns the constructor registered under name.
func Lookup(name string) (func() hash.Hash, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

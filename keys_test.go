package channels

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestNewSecretKeyEncoding(t *testing.T) {
	if _, err := NewSecretKey(make([]byte, 31)); !errors.Is(err, ErrKeyEncoding) {
		t.Fatalf("expected ErrKeyEncoding for short key, got %v", err)
	}
	reserved := make([]byte, KeySize)
	reserved[KeySize-1] = 0x80
	if _, err := NewSecretKey(reserved); !errors.Is(err, ErrKeyEncoding) {
		t.Fatalf("expected ErrKeyEncoding for reserved bit, got %v", err)
	}
	if _, err := NewPublicKey(reserved); !errors.Is(err, ErrKeyEncoding) {
		t.Fatalf("expected ErrKeyEncoding for public key, got %v", err)
	}

	raw := bytes.Repeat([]byte{0x11}, KeySize)
	sk, err := NewSecretKey(raw)
	if err != nil {
		t.Fatalf("NewSecretKey: %v", err)
	}
	raw[0] = 0
	if sk.Bytes()[0] != 0x11 {
		t.Fatalf("NewSecretKey should copy its input")
	}
}

func TestSecretKeyZero(t *testing.T) {
	kp, err := GenerateKeypair(nil)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	kp.Zero()
	if !bytes.Equal(kp.Secret.Bytes(), make([]byte, KeySize)) {
		t.Fatalf("Zero should wipe the secret")
	}

	var nilKey *SecretKey
	nilKey.Zero()
	var nilRel *RelationshipKeys
	nilRel.Zero()
}

func TestSecretKeyRedacted(t *testing.T) {
	kp, _ := GenerateKeypair(nil)
	for _, s := range []string{fmt.Sprint(kp.Secret), fmt.Sprintf("%#v", kp.Secret), fmt.Sprintf("%v", kp)} {
		if bytes.Contains([]byte(s), []byte(kp.Secret.Encode())) {
			t.Fatalf("formatted output leaks the secret: %s", s)
		}
	}
}

func TestParseKeys(t *testing.T) {
	kp, err := GenerateKeypair(nil)
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	pk, err := ParsePublicKey(kp.Public.String())
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if pk != kp.Public {
		t.Fatalf("public key round trip mismatch")
	}

	sk, err := ParseSecretKey(kp.Secret.Encode())
	if err != nil {
		t.Fatalf("ParseSecretKey: %v", err)
	}
	if !sk.Equal(kp.Secret) {
		t.Fatalf("secret key round trip mismatch")
	}

	if _, err := ParsePublicKey("0OIl"); !errors.Is(err, ErrKeyEncoding) {
		t.Fatalf("expected ErrKeyEncoding for invalid base58, got %v", err)
	}
	if _, err := ParseSecretKey("abc"); !errors.Is(err, ErrKeyEncoding) {
		t.Fatalf("expected ErrKeyEncoding for short secret, got %v", err)
	}
}

func TestGenerateKeypairShortReader(t *testing.T) {
	if _, err := GenerateKeypair(bytes.NewReader(make([]byte, 10))); err == nil {
		t.Fatalf("expected error from short reader")
	}
}

func TestGenerateKeypairDeterministicReader(t *testing.T) {
	entropy := bytes.Repeat([]byte{7}, 64)
	kp1, err := GenerateKeypair(bytes.NewReader(entropy))
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	kp2, _ := GenerateKeypair(bytes.NewReader(entropy))
	if !kp1.Secret.Equal(kp2.Secret) || kp1.Public != kp2.Public {
		t.Fatalf("same entropy should give same keypair")
	}
	pk, _ := DerivePublicKey(kp1.Secret)
	if pk != kp1.Public {
		t.Fatalf("public key does not match secret")
	}
}

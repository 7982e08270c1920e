package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pivaldi/channels/internal/config"
)

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &app{cfg: config.Default(), log: zap.NewNop(), console: newConsole(&out)}, &out
}

// field returns the value printed after "<label> public: ".
func field(t *testing.T, out, label string) string {
	t.Helper()
	prefix := label + " public: "
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	t.Fatalf("no %q line in output:\n%s", prefix, out)
	return ""
}

func keygen(t *testing.T, a *app, out *bytes.Buffer) (seed, pub string) {
	t.Helper()
	seed = filepath.Join(t.TempDir(), "seed.key")
	if err := runKeygen(a, []string{"--out", seed}); err != nil {
		t.Fatalf("keygen: %v", err)
	}
	out.Reset()
	if err := runPubkey(a, []string{"--seed", seed}); err != nil {
		t.Fatalf("pubkey: %v", err)
	}
	pub = strings.TrimSpace(out.String())
	out.Reset()
	return seed, pub
}

func TestDemo(t *testing.T) {
	a, out := testApp(t)
	if err := runDemo(a, nil); err != nil {
		t.Fatalf("demo: %v", err)
	}
	if out.String() != "true\ntrue\ntrue\n" {
		t.Fatalf("unexpected demo output:\n%s", out.String())
	}
}

func TestKeygenRefusesExisting(t *testing.T) {
	a, out := testApp(t)
	seed, _ := keygen(t, a, out)
	if err := runKeygen(a, []string{"--out", seed}); err == nil {
		t.Fatal("keygen should refuse an existing file")
	}
	if err := runKeygen(a, nil); err == nil {
		t.Fatal("keygen should require --out")
	}
}

func TestKeygenFailureLeavesNoFile(t *testing.T) {
	a, _ := testApp(t)
	dir := t.TempDir()
	cases := map[string][]string{
		"unknown hash": {"--hash", "md5", "--out", filepath.Join(dir, "md5.key")},
		"missing dir":  {"--out", filepath.Join(dir, "missing", "seed.key")},
	}
	for name, args := range cases {
		if err := runKeygen(a, args); err == nil {
			t.Fatalf("%s: keygen should fail", name)
		}
		if _, err := os.Stat(args[len(args)-1]); !os.IsNotExist(err) {
			t.Fatalf("%s: keygen left a seed file behind (stat: %v)", name, err)
		}
	}
}

func TestChannelMatchesChannelPublic(t *testing.T) {
	a, out := testApp(t)
	seed, pub := keygen(t, a, out)

	if err := runChannel(a, []string{"--seed", seed, "cats", "dogs"}); err != nil {
		t.Fatalf("channel: %v", err)
	}
	fromSecret := out.String()
	out.Reset()
	if strings.Contains(fromSecret, "secret:") {
		t.Fatal("channel should not print secrets without --show-secret")
	}

	if err := runChannelPublic(a, []string{"--pub", pub, "cats", "dogs"}); err != nil {
		t.Fatalf("channel-public: %v", err)
	}
	fromPublic := out.String()

	for _, label := range []string{"cats", "dogs"} {
		if field(t, fromSecret, label) != field(t, fromPublic, label) {
			t.Fatalf("%s: channel keys differ", label)
		}
	}
	if field(t, fromSecret, "cats") == field(t, fromSecret, "dogs") {
		t.Fatal("different contexts should give different keys")
	}
}

func TestRelationshipAgreement(t *testing.T) {
	a, out := testApp(t)
	aliceSeed, alicePub := keygen(t, a, out)
	bobSeed, bobPub := keygen(t, a, out)

	if err := runRelationship(a, []string{"--seed", aliceSeed, "--peer", bobPub}); err != nil {
		t.Fatalf("alice: %v", err)
	}
	alice := out.String()
	out.Reset()
	if err := runRelationship(a, []string{"--seed", bobSeed, "--peer", alicePub}); err != nil {
		t.Fatalf("bob: %v", err)
	}
	bob := out.String()

	if field(t, alice, "outbox") != field(t, bob, "inbox") {
		t.Fatal("alice outbox should match bob inbox")
	}
	if field(t, bob, "outbox") != field(t, alice, "inbox") {
		t.Fatal("bob outbox should match alice inbox")
	}
}

func TestCommandErrors(t *testing.T) {
	a, _ := testApp(t)
	if err := runChannel(a, []string{"cats"}); err == nil {
		t.Fatal("channel should require --seed")
	}
	if err := runChannelPublic(a, []string{"--pub", "0OIl", "cats"}); err == nil {
		t.Fatal("channel-public should reject invalid keys")
	}
	if err := runDemo(a, []string{"--hash", "md5"}); err == nil {
		t.Fatal("demo should reject unknown hashes")
	}
}

func TestDeriveAllKeepsOrder(t *testing.T) {
	labels := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	got, err := deriveAll(context.Background(), 2, labels, func(label []byte) (int, error) {
		return len(label), nil
	})
	if err != nil {
		t.Fatalf("deriveAll: %v", err)
	}
	for i, n := range got {
		if n != i+1 {
			t.Fatalf("result %d out of order: %v", i, got)
		}
	}

	boom := errors.New("boom")
	_, err = deriveAll(context.Background(), 2, labels, func(label []byte) (int, error) {
		if string(label) == "ccc" {
			return 0, boom
		}
		return 0, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

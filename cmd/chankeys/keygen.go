package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pivaldi/channels/internal/identity"
)

func runKeygen(a *app, args []string) error {
	fs, hash, _ := a.flagSet("keygen")
	outPath := fs.String("out", "", "output path for seed file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *outPath == "" {
		return fmt.Errorf("--out is required")
	}

	// Check if file exists
	if _, err := os.Stat(*outPath); err == nil {
		return fmt.Errorf("file already exists: %s", *outPath)
	}

	d, err := a.deriver(*hash)
	if err != nil {
		return err
	}

	// Generate seed
	seed, err := identity.GenerateSeed()
	if err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}
	defer clear(seed)

	// Derive keys first so a failure leaves no seed file behind
	keys, err := identity.DeriveKeys(d, seed)
	if err != nil {
		return fmt.Errorf("derive keys: %w", err)
	}
	defer keys.Zero()

	if err := identity.SaveSeed(*outPath, seed); err != nil {
		return fmt.Errorf("save seed: %w", err)
	}

	a.log.Info("seed written", zap.String("path", *outPath), zap.String("hash", *hash))
	a.console.Printf("Public key: %s\n", keys.Public)
	a.console.Printf("Fingerprint: %x\n", keys.Fingerprint)
	return nil
}

func runPubkey(a *app, args []string) error {
	fs, hash, seed := a.flagSet("pubkey")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := a.deriver(*hash)
	if err != nil {
		return err
	}
	keys, err := a.loadIdentity(d, *seed)
	if err != nil {
		return err
	}
	defer keys.Zero()

	a.console.Printf("%s\n", keys.Public)
	return nil
}

package main

import (
	"fmt"

	"github.com/pivaldi/channels"
)

// runDemo generates Alice and Bob and prints whether each derivation
// identity holds.
func runDemo(a *app, args []string) error {
	fs, hash, _ := a.flagSet("demo")
	channel := fs.String("channel", "cats", "public channel label")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := a.deriver(*hash)
	if err != nil {
		return err
	}

	// Generate Keypairs
	alice, err := channels.GenerateKeypair(nil)
	if err != nil {
		return err
	}
	defer alice.Zero()
	bob, err := channels.GenerateKeypair(nil)
	if err != nil {
		return err
	}
	defer bob.Zero()

	// Public Channels
	cats, err := d.DeriveChannelKeypair(alice.Secret, []byte(*channel))
	if err != nil {
		return err
	}
	defer cats.Zero()
	pubCats, err := d.DeriveChannelPublic(alice.Public, []byte(*channel))
	if err != nil {
		return err
	}
	a.console.Printf("%v\n", pubCats == cats.Public)

	// Secret Channels
	aliceRel, err := d.DeriveRelationshipKeys(alice.Secret, bob.Public)
	if err != nil {
		return fmt.Errorf("alice: %w", err)
	}
	defer aliceRel.Zero()
	bobRel, err := d.DeriveRelationshipKeys(bob.Secret, alice.Public)
	if err != nil {
		return fmt.Errorf("bob: %w", err)
	}
	defer bobRel.Zero()

	toAlice, err := channels.DerivePublicKey(bobRel.Secret)
	if err != nil {
		return err
	}
	toBob, err := channels.DerivePublicKey(aliceRel.Secret)
	if err != nil {
		return err
	}
	a.console.Printf("%v\n", aliceRel.Public == toAlice)
	a.console.Printf("%v\n", bobRel.Public == toBob)
	return nil
}

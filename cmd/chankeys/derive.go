package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pivaldi/channels"
)

// deriveAll runs fn for every context on at most workers goroutines and
// returns the results in input order.
func deriveAll[T any](ctx context.Context, workers int, contexts []string, fn func(label []byte) (T, error)) ([]T, error) {
	out := make([]T, len(contexts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range contexts {
		i, c := i, c // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn([]byte(c))
			if err != nil {
				return fmt.Errorf("context %q: %w", c, err)
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func runChannel(a *app, args []string) error {
	fs, hash, seed := a.flagSet("channel")
	showSecret := fs.Bool("show-secret", false, "also print channel secret keys")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("at least one context is required")
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

	pairs, err := deriveAll(context.Background(), a.cfg.Workers, fs.Args(), func(label []byte) (*channels.Keypair, error) {
		return d.DeriveChannelKeypair(keys.Secret, label)
	})
	if err != nil {
		return err
	}
	for i, kp := range pairs {
		a.console.Keypair(fs.Arg(i), kp, *showSecret)
		kp.Zero()
	}
	a.log.Info("channel keys derived", zap.Int("count", len(pairs)))
	return nil
}

func runChannelPublic(a *app, args []string) error {
	fs, hash, _ := a.flagSet("channel-public")
	pub := fs.String("pub", "", "base58 public key (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pub == "" {
		return fmt.Errorf("--pub is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("at least one context is required")
	}

	d, err := a.deriver(*hash)
	if err != nil {
		return err
	}
	pk, err := channels.ParsePublicKey(*pub)
	if err != nil {
		return fmt.Errorf("parse --pub: %w", err)
	}

	pubs, err := deriveAll(context.Background(), a.cfg.Workers, fs.Args(), func(label []byte) (channels.PublicKey, error) {
		return d.DeriveChannelPublic(pk, label)
	})
	if err != nil {
		return err
	}
	for i, p := range pubs {
		a.console.Printf("%s public: %s\n", fs.Arg(i), p)
	}
	a.log.Info("channel public keys derived", zap.Int("count", len(pubs)))
	return nil
}

func runRelationship(a *app, args []string) error {
	fs, hash, seed := a.flagSet("relationship")
	peer := fs.String("peer", "", "base58 public key of the peer (required)")
	showSecret := fs.Bool("show-secret", false, "also print the outbox secret key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *peer == "" {
		return fmt.Errorf("--peer is required")
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
	pk, err := channels.ParsePublicKey(*peer)
	if err != nil {
		return fmt.Errorf("parse --peer: %w", err)
	}

	rel, err := d.DeriveRelationshipKeys(keys.Secret, pk)
	if err != nil {
		return err
	}
	defer rel.Zero()
	outboxPub, err := channels.DerivePublicKey(rel.Secret)
	if err != nil {
		return err
	}

	a.console.Keypair("outbox", &channels.Keypair{Secret: rel.Secret, Public: outboxPub}, *showSecret)
	a.console.Printf("inbox public: %s\n", rel.Public)
	return nil
}

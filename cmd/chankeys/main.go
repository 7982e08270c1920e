package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/pivaldi/channels"
	"github.com/pivaldi/channels/internal/config"
	"github.com/pivaldi/channels/internal/identity"
)

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	console *console
}

type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"keygen":         {"generate a seed file and print its public key", runKeygen},
	"pubkey":         {"print the public key of a seed", runPubkey},
	"channel":        {"derive channel keypairs from a seed", runChannel},
	"channel-public": {"derive channel public keys from a public key", runChannelPublic},
	"relationship":   {"derive relationship keys with a peer", runRelationship},
	"demo":           {"check the derivation identities with random keys", runDemo},
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: chankeys [--config file] <command> [flags]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", name, commands[name].summary)
	}
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, log: log, console: newConsole(os.Stdout)}
	log.Debug("running command", zap.String("command", name), zap.String("hash", cfg.Hash))
	if err := cmd.run(a, flag.Args()[1:]); err != nil {
		log.Error("command failed", zap.String("command", name), zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// flagSet returns a FlagSet carrying the --hash and --seed flags shared by
// every command, seeded from the config.
func (a *app) flagSet(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	hash := fs.String("hash", a.cfg.Hash, "64-byte hash: sha512, sha3-512, blake2b-512, blake3-512")
	seed := fs.String("seed", a.cfg.Seed, "path to seed file")
	return fs, hash, seed
}

func (a *app) deriver(hash string) (*channels.Deriver, error) {
	d, err := channels.NewDeriverByName(hash)
	if err != nil {
		return nil, fmt.Errorf("select hash: %w", err)
	}
	return d, nil
}

func (a *app) loadIdentity(d *channels.Deriver, seedPath string) (*identity.Keys, error) {
	if seedPath == "" {
		return nil, fmt.Errorf("--seed is required")
	}
	keys, err := identity.Load(d, seedPath)
	if err != nil {
		return nil, err
	}
	a.log.Debug("identity loaded",
		zap.String("seed", seedPath),
		zap.String("fingerprint", fmt.Sprintf("%x", keys.Fingerprint)))
	return keys, nil
}

// Package channels derives per-context ("channel") keys and pairwise
// relationship keys from a single long-term Ristretto255 keypair.
//
// A key holder derives a channel secret from its secret key and a context
// label; anyone knowing only the public key derives the matching channel
// public key for the same label:
//
//	DerivePublicKey(d.DeriveChannelSecret(sk, c)) == d.DeriveChannelPublic(pk, c)
//
// Two parties combine their keys with DeriveRelationshipKeys. Each side gets
// an outbox secret and the inbox public key of the other side, and each
// inbox equals the public key of the counterparty's outbox.
//
// Derivations are pure and safe for concurrent use. Secret keys returned to
// callers should be wiped with Zero once no longer needed.
package channels

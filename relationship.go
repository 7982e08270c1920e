package channels

import "fmt"

// RelationshipKeys is one party's view of a pairwise channel. Secret is the
// outbox key this party signs with; Public is the counterparty's outbox
// public key, used to verify what it sends. The two fields are not a keypair
// of each other.
type RelationshipKeys struct {
	Secret *SecretKey
	Public PublicKey
}

// Zero wipes the outbox secret.
func (rk *RelationshipKeys) Zero() {
	if rk != nil {
		rk.Secret.Zero()
	}
}

// DeriveRelationshipKeys derives the relationship keys between the local
// secret and the remote public key. Both channels are bound to the shared
// Diffie-Hellman secret, so for parties A and B:
//
//	DerivePublicKey(A.Secret) == B.Public
//	DerivePublicKey(B.Secret) == A.Public
func (d *Deriver) DeriveRelationshipKeys(secret *SecretKey, public PublicKey) (*RelationshipKeys, error) {
	shared, err := DeriveSharedSecret(secret, public)
	if err != nil {
		return nil, fmt.Errorf("derive relationship keys: %w", err)
	}
	defer shared.Zero()
	label := shared.Bytes()
	defer clear(label)

	outbox, err := d.DeriveChannelSecret(secret, label)
	if err != nil {
		return nil, fmt.Errorf("derive relationship keys: %w", err)
	}
	inbox, err := d.DeriveChannelPublic(public, label)
	if err != nil {
		outbox.Zero()
		return nil, fmt.Errorf("derive relationship keys: %w", err)
	}
	return &RelationshipKeys{Secret: outbox, Public: inbox}, nil
}

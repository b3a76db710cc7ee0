package openpgp

// Keychain is the external keyring interface this package consumes but
// does not implement (spec.md §6): a caller-supplied source of secret
// keys and their passphrases, distinct from a Message's own decoded
// packet chain. A Message is self-contained for the common "decrypt a
// message using the secret key packets embedded in it" case; Keychain
// exists for the less common case of decrypting a message against keys
// stored separately from it.
type Keychain interface {
	// Iterator returns a fresh KeyChainIterator positioned before the
	// first entry.
	Iterator() KeyChainIterator
}

// KeyChainIterator walks a Keychain's entries one at a time.
type KeyChainIterator interface {
	// Next advances to the next entry and reports whether one exists.
	Next() bool
	// SecretKey returns the current entry's secret key body.
	SecretKey() *SecretKeyBody
	// Passphrase returns the passphrase to decrypt the current entry's
	// secret key, if known.
	Passphrase() []byte
}

// LoadKeychainWithKeys decrypts every secret key packet in msg using the
// matching passphrase supplied by keychain, keyed by key-id (spec.md §6,
// packet.c's spgp_load_keychain_with_keys). It is an alternative to
// DecryptAllSecretKeys for callers that hold distinct passphrases per key
// rather than one passphrase for the whole message.
func LoadKeychainWithKeys(msg *Message, keychain Keychain) error {
	it := keychain.Iterator()
	for it.Next() {
		entry := it.SecretKey()
		if entry == nil {
			continue
		}
		for _, pkt := range msg.Packets {
			if pkt.Secret == nil {
				continue
			}
			if !keyIDsEqual(pkt.Secret.Public.KeyID(), entry.Public.KeyID()) {
				continue
			}
			if err := DecryptSecretKey(pkt.Secret, it.Passphrase()); err != nil {
				return wrapErr(ErrKeychainError, err, "keychain entry keyid=% x", entry.Public.KeyID())
			}
		}
	}
	return nil
}

package openpgp

import (
	"math/big"

	"github.com/ProtonMail/go-crypto/openpgp/elgamal"
)

// RecoverSessionKey decrypts a session packet's Elgamal-encrypted session
// key using an already-decrypted secret key, filling in SessionBody.
// SymAlgo and SessionBody.Key (spec.md §4.G). Grounded on
// other_examples' EncryptedKey.Decrypt (ProtonMail/go-crypto) for the
// elgamal.Decrypt call shape and packet.c's spgp_parse_session_packet for
// the EME-PKCS1-style frame layout that follows it.
func RecoverSessionKey(session *SessionBody, secret *SecretKeyBody) error {
	if session.AsymAlgo != AsymElgamal {
		return errf(ErrFormatUnsupported, "session asymmetric algorithm %d is not supported, only Elgamal", session.AsymAlgo)
	}
	if !secret.IsDecrypted {
		return errf(ErrInvalidArgs, "secret key is not decrypted, cannot recover session key")
	}
	// publickey.go records Elgamal public MPIs as p, g, y; DecryptSecretKey
	// appends the recovered secret exponent x as a fourth MPI once the
	// key has been unlocked.
	if secret.Public.AsymAlgo != AsymElgamal || len(secret.Public.MPIs) != 4 {
		return errf(ErrFormatUnsupported, "matching secret key is not an Elgamal key")
	}

	p := secret.Public.MPIs[0].Int()
	g := secret.Public.MPIs[1].Int()
	y := secret.Public.MPIs[2].Int()
	x := secret.Public.MPIs[3].Int()

	priv := &elgamal.PrivateKey{
		PublicKey: elgamal.PublicKey{
			G: g,
			P: p,
			Y: y,
		},
		X: x,
	}

	c1 := session.MPI1.Int()
	c2 := session.MPI2.Int()
	frame, err := elgamalDecryptFrame(priv, c1, c2)
	if err != nil {
		return wrapErr(ErrDecryptFailed, err, "elgamal decrypt")
	}

	symAlgo, key, err := decodeSessionFrame(frame)
	if err != nil {
		return err
	}

	session.SymAlgo = symAlgo
	session.Key = key
	logf("session key recovered: algo=%d len=%d", symAlgo, len(key))
	return nil
}

// elgamalDecryptFrame performs the raw Elgamal decryption, producing the
// PKCS1-framed plaintext. It exists as a seam so the big.Int plumbing
// stays in one place.
func elgamalDecryptFrame(priv *elgamal.PrivateKey, c1, c2 *big.Int) ([]byte, error) {
	return elgamal.Decrypt(priv, c1, c2)
}

// decodeSessionFrame parses the EME-PKCS1 v1.5-style frame produced by
// Elgamal decryption: a 0x02 block-type byte, non-zero random padding, a
// zero separator, the symmetric algorithm byte, the session key itself,
// and a trailing 2-byte big-endian additive checksum of the key bytes
// (RFC 4880 §5.1). Grounded on packet.c's checksum-and-unframe logic in
// spgp_parse_session_packet.
func decodeSessionFrame(frame []byte) (SymAlgo, []byte, error) {
	if len(frame) < 4 || frame[0] != 2 {
		return 0, nil, errf(ErrDecryptFailed, "session frame has unexpected block type")
	}

	i := 1
	for i < len(frame) && frame[i] != 0 {
		i++
	}
	if i >= len(frame) {
		return 0, nil, errf(ErrDecryptFailed, "session frame padding separator not found")
	}
	i++ // skip the zero separator

	if i+1 > len(frame) {
		return 0, nil, errf(ErrDecryptFailed, "session frame truncated before algorithm byte")
	}
	symAlgo := SymAlgo(frame[i])
	i++

	if len(frame)-i < 2 {
		return 0, nil, errf(ErrDecryptFailed, "session frame truncated before checksum")
	}
	key := frame[i : len(frame)-2]
	checksum := frame[len(frame)-2:]

	var sum uint16
	for _, b := range key {
		sum += uint16(b)
	}
	want := uint16(checksum[0])<<8 | uint16(checksum[1])
	if sum != want {
		return 0, nil, errf(ErrDecryptFailed, "session key checksum mismatch")
	}

	return symAlgo, key, nil
}

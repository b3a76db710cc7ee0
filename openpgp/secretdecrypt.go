package openpgp

import (
	"crypto/cipher"
	"crypto/sha1"
	"crypto/subtle"
)

// DecryptSecretKey derives the S2K key from passphrase and uses it to
// CFB-decrypt a secret key packet's encrypted MPI material into a fresh
// buffer (EncryptedData itself is left unchanged), verifying the trailing
// SHA-1 integrity hash (spec.md §4.F). It is
// idempotent: calling it again on an already-decrypted packet is a no-op,
// matching packet.c's spgp_decrypt_secret_key guard against re-decrypting
// a key that decrypt_all_secret_keys has already walked.
func DecryptSecretKey(s *SecretKeyBody, passphrase []byte) error {
	if s.IsDecrypted {
		return nil
	}

	keyLen := keyLength(s.S2KEncryption)
	if keyLen == 0 {
		return errf(ErrFormatUnsupported, "symmetric algorithm %d is not supported for secret key decryption", s.S2KEncryption)
	}
	key := deriveKey(passphrase, s.S2KSalt, s.S2KCount, keyLen)

	block, err := newBlockCipher(s.S2KEncryption, key)
	if err != nil {
		return wrapErr(ErrCryptoLibraryError, err, "secret key cipher init")
	}
	if len(s.EncryptedData) < sha1.Size {
		return errf(ErrBufferOverflow, "secret key encrypted data shorter than its own SHA-1 trailer")
	}

	plain := make([]byte, len(s.EncryptedData))
	stream := cipher.NewCFBDecrypter(block, s.IV)
	stream.XORKeyStream(plain, s.EncryptedData)

	mpiData := plain[:len(plain)-sha1.Size]
	trailer := plain[len(plain)-sha1.Size:]

	sum := sha1.Sum(mpiData)
	if subtle.ConstantTimeCompare(sum[:], trailer) != 1 {
		return errf(ErrDecryptFailed, "secret key integrity check failed, wrong passphrase or corrupt data")
	}

	x, err := readMPI(newCursor(mpiData))
	if err != nil {
		return wrapErr(ErrInvalidHeader, err, "decrypted secret mpi")
	}
	s.Public.MPIs = append(s.Public.MPIs, x)
	s.IsDecrypted = true
	logf("secret key decrypted: keyid=% x mpi_count=%d", s.Public.KeyID(), len(s.Public.MPIs))
	return nil
}

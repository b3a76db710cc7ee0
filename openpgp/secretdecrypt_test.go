package openpgp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"testing"
)

// buildEncryptedSecretKey assembles a SecretKeyBody whose EncryptedData is
// a valid CFB encryption of mpiData+its SHA-1 trailer under the S2K key
// derived from passphrase, the inverse of what DecryptSecretKey performs.
func buildEncryptedSecretKey(t *testing.T, passphrase, mpiData []byte) *SecretKeyBody {
	t.Helper()
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	count := byte(0x10)
	key := deriveKey(passphrase, salt, count, 16)

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	iv := make([]byte, aes.BlockSize)
	for i := range iv {
		iv[i] = byte(i)
	}

	trailer := sha1.Sum(mpiData)
	plain := append(append([]byte{}, mpiData...), trailer[:]...)
	ciphertext := make([]byte, len(plain))
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, plain)

	return &SecretKeyBody{
		Public:        &PublicKeyBody{AsymAlgo: AsymElgamal},
		S2KType:       254,
		S2KEncryption: SymAES128,
		S2KSpecifier:  3,
		S2KHashAlgo:   HashSHA1,
		S2KSalt:       salt,
		S2KCount:      count,
		IV:            iv,
		EncryptedData: ciphertext,
	}
}

func TestDecryptSecretKeySuccess(t *testing.T) {
	mpiData := []byte{0x00, 0x08, 0x2A} // a trivial one-byte MPI
	secret := buildEncryptedSecretKey(t, []byte("correct horse"), mpiData)

	if err := DecryptSecretKey(secret, []byte("correct horse")); err != nil {
		t.Fatalf("DecryptSecretKey: %v", err)
	}
	if !secret.IsDecrypted {
		t.Errorf("expected IsDecrypted to be true")
	}
	if len(secret.Public.MPIs) != 1 {
		t.Fatalf("len(Public.MPIs) = %d, want 1", len(secret.Public.MPIs))
	}
	got := secret.Public.MPIs[len(secret.Public.MPIs)-1]
	if string(got.Wire) != string(mpiData) {
		t.Errorf("recovered secret mpi = % x, want % x", got.Wire, mpiData)
	}
}

func TestDecryptSecretKeyWrongPassphrase(t *testing.T) {
	secret := buildEncryptedSecretKey(t, []byte("correct horse"), []byte{0x00, 0x08, 0x2A})
	if err := DecryptSecretKey(secret, []byte("wrong passphrase")); err == nil {
		t.Errorf("expected error decrypting with the wrong passphrase")
	}
}

func TestDecryptSecretKeyIdempotent(t *testing.T) {
	secret := buildEncryptedSecretKey(t, []byte("correct horse"), []byte{0x00, 0x08, 0x2A})
	if err := DecryptSecretKey(secret, []byte("correct horse")); err != nil {
		t.Fatalf("first decrypt: %v", err)
	}
	if err := DecryptSecretKey(secret, []byte("anything")); err != nil {
		t.Errorf("second call on an already-decrypted key should be a no-op, got error: %v", err)
	}
}

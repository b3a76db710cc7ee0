package openpgp

import "crypto/sha1"

// s2kHashSize is the only hash algorithm this package derives keys with
// (spec.md §1 Non-goals, §6).
const s2kHashSize = sha1.Size

// deriveKey runs the iterated-and-salted S2K function (RFC 4880 §3.7.1.3)
// to produce keyLen bytes of key material from passphrase, salt and an
// encoded byte count. Grounded on packet.c's spgp_generate_cipher_key and
// the equivalent decodeS2K/s2k pair in the teacher's openpgp/signkey.go.
//
// Only s2k_specifier 3 (iterated and salted) is implemented; that is the
// only specifier this package's SecretKeyBody ever records (see
// secretkey.go), matching packet.c's hardcoded assumption.
func deriveKey(passphrase, salt []byte, countByte byte, keyLen int) []byte {
	count := s2kCount(countByte)

	key := make([]byte, 0, keyLen)
	var prefix int
	for len(key) < keyLen {
		h := sha1.New()
		// Each hash round after the first is primed with `prefix` zero
		// bytes, the standard technique for deriving more key material
		// than a single hash output provides.
		for i := 0; i < prefix; i++ {
			h.Write([]byte{0})
		}

		written := 0
		for written < count {
			remaining := count - written
			chunk := salt
			if remaining < len(chunk) {
				chunk = chunk[:remaining]
			}
			if len(chunk) > 0 {
				h.Write(chunk)
				written += len(chunk)
			}
			if written >= count {
				break
			}
			remaining = count - written
			chunk = passphrase
			if remaining < len(chunk) {
				chunk = chunk[:remaining]
			}
			if len(chunk) > 0 {
				h.Write(chunk)
				written += len(chunk)
			}
			if len(salt)+len(passphrase) == 0 {
				break
			}
		}

		key = append(key, h.Sum(nil)...)
		prefix++
	}
	return key[:keyLen]
}

// s2kCount decodes the RFC 4880 §3.7.1.3 "magic formula" byte count.
func s2kCount(c byte) int {
	return (16 + int(c&15)) << (uint(c>>4) + 6)
}

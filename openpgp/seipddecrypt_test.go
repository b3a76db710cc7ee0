package openpgp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"testing"
)

// buildSEIPDCiphertext produces the encrypted form of content under key:
// a random-block prefix with its last two bytes repeated, the content
// itself, and a 2-byte MDC header plus SHA-1 hash trailer, all CFB
// encrypted with a zero IV — the inverse of DecryptSEIPD.
func buildSEIPDCiphertext(t *testing.T, key, content []byte) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	bs := block.BlockSize()

	prefix := make([]byte, bs+2)
	for i := 0; i < bs; i++ {
		prefix[i] = byte(i + 1)
	}
	prefix[bs] = prefix[bs-2]
	prefix[bs+1] = prefix[bs-1]

	plain := append(append([]byte{}, prefix...), content...)
	mdcHeader := []byte{0xD3, 0x14}
	plain = append(plain, mdcHeader...)
	hash := sha1.Sum(plain)
	plain = append(plain, hash[:]...)

	ciphertext := make([]byte, len(plain))
	iv := make([]byte, bs)
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, plain)
	return ciphertext
}

func TestDecryptSEIPDSuccess(t *testing.T) {
	key := []byte("0123456789abcdef")
	content := []byte("the quick brown fox jumps over the lazy dog")
	ciphertext := buildSEIPDCiphertext(t, key, content)

	buf := make([]byte, 4+len(ciphertext))
	copy(buf[4:], ciphertext)
	body := &SEIPDBody{Version: 1, StartOffset: 4, FirstSegment: len(ciphertext)}

	consumed, err := DecryptSEIPD(buf, body, SymAES128, key)
	if err != nil {
		t.Fatalf("DecryptSEIPD: %v", err)
	}
	if consumed != len(ciphertext) {
		t.Errorf("consumed = %d, want %d", consumed, len(ciphertext))
	}
	if !body.Decrypted {
		t.Errorf("expected Decrypted to be true")
	}

	block, _ := aes.NewCipher(key)
	bs := block.BlockSize()
	plaintextStart := 4 + bs + 2
	got := buf[plaintextStart : plaintextStart+len(content)]
	if string(got) != string(content) {
		t.Errorf("decrypted content = %q, want %q", got, content)
	}
}

func TestDecryptSEIPDTamperedHash(t *testing.T) {
	key := []byte("0123456789abcdef")
	ciphertext := buildSEIPDCiphertext(t, key, []byte("hello world"))
	ciphertext[len(ciphertext)-1] ^= 0xFF // corrupt the trailing hash

	buf := append([]byte{}, ciphertext...)
	body := &SEIPDBody{Version: 1, StartOffset: 0, FirstSegment: len(ciphertext)}
	if _, err := DecryptSEIPD(buf, body, SymAES128, key); err == nil {
		t.Errorf("expected mdc hash mismatch error")
	}
}

// buildSegmentedSEIPDCiphertext assembles a full plaintext (prefix +
// content + MDC trailer) and encrypts it as a sequence of independent
// CFB segments, each starting from a fresh all-zero IV — the layout a
// partial-length SEIPD packet with len(segLens) segments actually
// produces on the wire, as opposed to one continuous keystream.
func buildSegmentedSEIPDCiphertext(t *testing.T, key, content []byte, segLens []int) []byte {
	t.Helper()
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	bs := block.BlockSize()

	prefix := make([]byte, bs+2)
	for i := 0; i < bs; i++ {
		prefix[i] = byte(i + 1)
	}
	prefix[bs] = prefix[bs-2]
	prefix[bs+1] = prefix[bs-1]

	plain := append(append([]byte{}, prefix...), content...)
	mdcHeader := []byte{0xD3, 0x14}
	plain = append(plain, mdcHeader...)
	hash := sha1.Sum(plain)
	plain = append(plain, hash[:]...)

	total := 0
	for _, n := range segLens {
		total += n
	}
	if total != len(plain) {
		t.Fatalf("segment lengths sum to %d, want %d", total, len(plain))
	}

	ciphertext := make([]byte, len(plain))
	offset := 0
	for _, n := range segLens {
		iv := make([]byte, bs)
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext[offset:offset+n], plain[offset:offset+n])
		offset += n
	}
	return ciphertext
}

// partialLengthByte encodes n (a power of two) as a new-format partial
// body length octet (spec.md §4.C, the 224-254 range).
func partialLengthByte(n int) byte {
	shift := 0
	for 1<<uint(shift) != n {
		shift++
	}
	return byte(224 + shift)
}

func TestDecryptSEIPDPartialMultiSegment(t *testing.T) {
	key := []byte("0123456789abcdef")
	const seg0, seg1, seg2 = 4096, 4096, 37
	content := make([]byte, 8189) // sized so prefix+content+mdc trailer == seg0+seg1+seg2
	for i := range content {
		content[i] = byte(i)
	}
	ciphertext := buildSegmentedSEIPDCiphertext(t, key, content, []int{seg0, seg1, seg2})

	buf := make([]byte, 4+seg0+1+seg1+1+seg2)
	startOffset := 4
	pos := startOffset
	copy(buf[pos:], ciphertext[:seg0])
	pos += seg0
	buf[pos] = partialLengthByte(seg1)
	pos++
	copy(buf[pos:], ciphertext[seg0:seg0+seg1])
	pos += seg1
	buf[pos] = byte(seg2) // final, non-partial segment length
	pos++
	copy(buf[pos:], ciphertext[seg0+seg1:])

	body := &SEIPDBody{Version: 1, StartOffset: startOffset, FirstSegment: seg0, IsPartial: true}
	ciphertextLen, originalSpan, segments, err := compactSegments(buf, body)
	if err != nil {
		t.Fatalf("compactSegments: %v", err)
	}
	wantTotal := seg0 + seg1 + seg2
	if ciphertextLen != wantTotal {
		t.Errorf("ciphertextLen = %d, want %d", ciphertextLen, wantTotal)
	}
	if originalSpan != len(buf)-startOffset {
		t.Errorf("originalSpan = %d, want %d", originalSpan, len(buf)-startOffset)
	}
	if len(segments) != 3 || segments[0] != seg0 || segments[1] != seg1 || segments[2] != seg2 {
		t.Errorf("segments = %v, want [%d %d %d]", segments, seg0, seg1, seg2)
	}

	body.FirstSegment = ciphertextLen
	body.Segments = segments
	body.IsPartial = false

	consumed, err := DecryptSEIPD(buf, body, SymAES128, key)
	if err != nil {
		t.Fatalf("DecryptSEIPD: %v", err)
	}
	if consumed != wantTotal {
		t.Errorf("consumed = %d, want %d", consumed, wantTotal)
	}
	if !body.Decrypted {
		t.Errorf("expected Decrypted to be true")
	}

	block, _ := aes.NewCipher(key)
	bs := block.BlockSize()
	plaintextStart := startOffset + bs + 2
	got := buf[plaintextStart : plaintextStart+len(content)]
	if string(got) != string(content) {
		t.Errorf("decrypted content across segments did not round-trip")
	}
}

func TestDecryptSEIPDAlreadyDecrypted(t *testing.T) {
	body := &SEIPDBody{Decrypted: true}
	if _, err := DecryptSEIPD(nil, body, SymAES128, nil); err == nil {
		t.Errorf("expected error re-decrypting an already-decrypted packet")
	}
}

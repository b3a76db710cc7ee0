package openpgp

import (
	"crypto/cipher"
	"crypto/sha1"
	"crypto/subtle"
)

// mdcTrailerLen is the Modification Detection Code packet appended
// before encryption: a 2-byte tag/length header (0xD3, 0x14) followed by
// a 20-byte SHA-1 hash.
const mdcTrailerLen = 2 + sha1.Size

// DecryptSEIPD decrypts a Symmetrically Encrypted Integrity Protected
// Data packet's ciphertext in place within buf, verifying its trailing
// MDC hash, and reports how many ciphertext bytes (starting at
// body.StartOffset) were decrypted (spec.md §4.H). Grounded on packet.c's
// spgp_parse_encrypted_packet.
//
// A partial-length body is decrypted one segment at a time, each with
// its own fresh cipher and an all-zero IV: packet.c re-opens the cipher
// and resets its IV to zero on every iteration of its segment loop
// (spgp_parse_encrypted_packet), rather than running one continuous CFB
// keystream across the whole message. Concatenating segments first and
// decrypting once would produce the wrong plaintext for every segment
// after the first.
func DecryptSEIPD(buf []byte, body *SEIPDBody, algo SymAlgo, key []byte) (consumed int, err error) {
	if body.Decrypted {
		return 0, errf(ErrInvalidArgs, "seipd packet already decrypted")
	}

	segments := body.Segments
	if len(segments) == 0 {
		segments = []int{body.FirstSegment}
	}
	ciphertextLen := 0
	for _, n := range segments {
		ciphertextLen += n
	}

	block, err := newBlockCipher(algo, key)
	if err != nil {
		return 0, wrapErr(ErrCryptoLibraryError, err, "seipd cipher init")
	}
	bs := block.BlockSize()
	if ciphertextLen < bs+2+mdcTrailerLen {
		return 0, errf(ErrBufferOverflow, "seipd ciphertext too short: %d bytes", ciphertextLen)
	}

	plaintext := buf[body.StartOffset : body.StartOffset+ciphertextLen]
	iv := make([]byte, bs)
	offset := 0
	for _, segLen := range segments {
		seg := plaintext[offset : offset+segLen]
		stream := cipher.NewCFBDecrypter(block, iv)
		stream.XORKeyStream(seg, seg)
		offset += segLen
	}

	// The prefix is a random block followed by a 2-byte repeat of its
	// last two bytes, an early integrity check the original C source
	// treats as advisory only (it still runs the MDC check below). It
	// only exists once, at the very start of the first segment.
	if plaintext[bs-2] != plaintext[bs] || plaintext[bs-1] != plaintext[bs+1] {
		logf("seipd: quick integrity check mismatch, relying on MDC hash")
	}

	hashed := plaintext[:ciphertextLen-sha1.Size]
	gotTrailer := plaintext[ciphertextLen-mdcTrailerLen : ciphertextLen-sha1.Size]
	if gotTrailer[0] != 0xD3 || gotTrailer[1] != 0x14 {
		return 0, errf(ErrDecryptFailed, "seipd mdc packet header is malformed")
	}
	wantHash := plaintext[ciphertextLen-sha1.Size:]
	sum := sha1.Sum(hashed)
	if subtle.ConstantTimeCompare(sum[:], wantHash) != 1 {
		return 0, errf(ErrDecryptFailed, "seipd mdc hash mismatch, data may be tampered")
	}

	body.Decrypted = true
	logf("seipd decrypted: %d plaintext bytes across %d segment(s)", ciphertextLen-bs-2-mdcTrailerLen, len(segments))
	return ciphertextLen, nil
}

// compactSegments, for a partial-length SEIPD body, walks the
// new-format partial-length continuation headers that follow the first
// segment, shifting each subsequent segment's bytes left in buf to sit
// directly after the previous segment (zeroing the freed sub-header
// bytes), so the full ciphertext ends up contiguous starting at
// body.StartOffset. It returns the compacted ciphertext length, the
// number of original bytes (including every sub-header) the packet
// spanned, and each segment's individual length in wire order — DecryptSEIPD
// needs the latter to restart its cipher with a fresh zero IV at each
// segment boundary. For a non-partial body this is just body.FirstSegment
// with no compaction needed.
func compactSegments(buf []byte, body *SEIPDBody) (ciphertextLen int, originalSpan int, segments []int, err error) {
	if !body.IsPartial {
		return body.FirstSegment, body.FirstSegment, []int{body.FirstSegment}, nil
	}

	writeEnd := body.StartOffset + body.FirstSegment
	readPos := writeEnd
	total := body.FirstSegment
	segments = []int{body.FirstSegment}

	for {
		c := newCursor(buf[readPos:])
		segLen, headerLen, isPartial, err := newFormatLength(c)
		if err != nil {
			return 0, 0, nil, wrapErr(ErrInvalidHeader, err, "seipd continuation segment header")
		}
		subHeaderLen := headerLen - 1 // no tag byte precedes a continuation header
		segStart := readPos + subHeaderLen
		if segStart+segLen > len(buf) {
			return 0, 0, nil, errf(ErrBufferOverflow, "seipd continuation segment runs past end of message")
		}

		copy(buf[writeEnd:writeEnd+segLen], buf[segStart:segStart+segLen])
		// Zero the bytes freed by removing this sub-header, matching the
		// original's sub-header zeroing so no stale length bytes linger
		// in the compacted region.
		for i := writeEnd + segLen; i < segStart+segLen && i < len(buf); i++ {
			buf[i] = 0
		}

		writeEnd += segLen
		total += segLen
		segments = append(segments, segLen)
		readPos = segStart + segLen

		if !isPartial {
			break
		}
	}

	return total, readPos - body.StartOffset, segments, nil
}

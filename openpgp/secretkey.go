package openpgp

// parseSecretKey decodes a secret key or subkey body following an
// already-parsed public key body (spec.md §4.D "Secret key"). Grounded on
// packet.c's spgp_parse_secret_key / spgp_read_salt / spgp_read_iv.
//
// s2k_type 254 (SHA-1 checksum trailer) and 255 are handled as encrypted.
// s2k_type 0 means the secret MPI(s) follow unencrypted with a trailing
// 2-byte additive checksum; packet.c's spgp_read_all_secret_mpis only
// supports that layout for a DSA secret key (one MPI, x) and rejects
// Elgamal and every other algorithm, so this does the same.
func parseSecretKey(c *cursor, h *Header) (*SecretKeyBody, error) {
	pub, err := parsePublicKey(c, h)
	if err != nil {
		return nil, err
	}

	s2kType, err := c.readByte()
	if err != nil {
		return nil, err
	}

	s := &SecretKeyBody{Public: pub, S2KType: s2kType}

	if s2kType == 0 {
		return parseUnencryptedSecretKey(c, s)
	}

	switch s2kType {
	case 254, 255:
		encAlgo, err := c.readByte()
		if err != nil {
			return nil, err
		}
		s.S2KEncryption = SymAlgo(encAlgo)

		specifier, err := c.readByte()
		if err != nil {
			return nil, err
		}
		s.S2KSpecifier = specifier
		if specifier != 3 {
			return nil, errf(ErrFormatUnsupported, "s2k specifier %d is not supported, only iterated-and-salted (3)", specifier)
		}

		hashAlgo, err := c.readByte()
		if err != nil {
			return nil, err
		}
		s.S2KHashAlgo = HashAlgo(hashAlgo)
		if s.S2KHashAlgo != HashSHA1 {
			return nil, errf(ErrFormatUnsupported, "s2k hash algorithm %d is not supported, only SHA-1", hashAlgo)
		}

		salt, err := c.readN(8)
		if err != nil {
			return nil, err
		}
		s.S2KSalt = salt

		count, err := c.readByte()
		if err != nil {
			return nil, err
		}
		s.S2KCount = count
	default:
		return nil, errf(ErrFormatUnsupported, "s2k type %d is not supported", s2kType)
	}

	ivLen := blockSize(s.S2KEncryption)
	if ivLen == 0 {
		return nil, errf(ErrFormatUnsupported, "symmetric algorithm %d is not supported for secret key IV", s.S2KEncryption)
	}
	iv, err := c.readN(ivLen)
	if err != nil {
		return nil, err
	}
	s.IV = iv

	// Everything remaining up to the end of this packet's declared
	// content is the encrypted secret MPI material plus, once
	// decrypted, a trailing SHA-1 hash (spec.md §4.F). The caller
	// (the engine loop) knows the packet boundary; here we simply take
	// what packetSize bytes remain in the header-declared content.
	consumedSoFar := 1 + 1 + 1 + 1 + 8 + 1 + ivLen // s2kType..iv, assuming 254/255 path
	remainingInPacket := h.ContentLength - publicKeyEncodedLength(pub) - consumedSoFar
	if remainingInPacket < 0 {
		return nil, errf(ErrBufferOverflow, "secret key packet declares content_length shorter than its own header fields")
	}
	enc, err := c.readN(remainingInPacket)
	if err != nil {
		return nil, err
	}
	s.EncryptedData = enc

	logf("secret key: s2k_type=%d s2k_encryption=%d", s.S2KType, s.S2KEncryption)
	return s, nil
}

// parseUnencryptedSecretKey handles s2k_type 0: the secret MPI material
// follows in the clear, terminated by a 2-byte additive checksum over its
// wire bytes (no IV, no cipher, no S2K fields at all). packet.c only
// supports this for a DSA secret key, reading its single secret MPI x;
// every other algorithm is rejected, matching spgp_read_all_secret_mpis.
func parseUnencryptedSecretKey(c *cursor, s *SecretKeyBody) (*SecretKeyBody, error) {
	if s.Public.AsymAlgo != AsymDSA {
		return nil, errf(ErrFormatUnsupported, "unencrypted secret key material is only supported for DSA, got algorithm %d", s.Public.AsymAlgo)
	}

	x, err := readMPI(c)
	if err != nil {
		return nil, wrapErr(ErrInvalidHeader, err, "dsa secret mpi x")
	}

	checksum, err := c.readN(2)
	if err != nil {
		return nil, err
	}
	var sum uint16
	for _, b := range x.Wire {
		sum += uint16(b)
	}
	want := uint16(checksum[0])<<8 | uint16(checksum[1])
	if sum != want {
		return nil, errf(ErrDecryptFailed, "unencrypted secret key checksum mismatch")
	}

	s.Public.MPIs = append(s.Public.MPIs, x)
	s.IsDecrypted = true
	logf("secret key: s2k_type=0 (unencrypted), keyid=% x", s.Public.KeyID())
	return s, nil
}

// publicKeyEncodedLength returns the number of bytes the public key
// portion of a secret key packet occupied on the wire: version +
// creation time + algo + MPI wire encodings.
func publicKeyEncodedLength(p *PublicKeyBody) int {
	n := 1 + 4 + 1
	for _, m := range p.MPIs {
		n += len(m.Wire)
	}
	return n
}

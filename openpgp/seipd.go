package openpgp

// parseSEIPD decodes the version byte of a Symmetrically Encrypted
// Integrity Protected Data packet and records where its ciphertext
// begins, without copying it out of the shared message buffer (spec.md
// §4.D "Symmetrically encrypted integrity protected data"). The
// ciphertext itself, including any later partial-length continuation
// segments, is handled in place by seipddecrypt.go once a session key has
// been recovered for it.
//
// Grounded on packet.c's spgp_parse_encrypted_packet, which likewise
// defers the actual decrypt step to a later pass over the keychain.
func parseSEIPD(c *cursor, h *Header) (*SEIPDBody, error) {
	version, err := c.readByte()
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, errf(ErrFormatUnsupported, "seipd version %d is not supported, only v1", version)
	}

	firstSegment := h.ContentLength - 1
	if firstSegment < 0 {
		return nil, errf(ErrBufferOverflow, "seipd packet content_length %d too small for version byte", h.ContentLength)
	}

	body := &SEIPDBody{
		Version:      version,
		StartOffset:  c.idx,
		FirstSegment: firstSegment,
		IsPartial:    h.IsPartial,
	}

	if err := c.advance(firstSegment); err != nil {
		return nil, err
	}

	logf("seipd packet: start=%d first_segment=%d partial=%v", body.StartOffset, firstSegment, body.IsPartial)
	return body, nil
}

package openpgp

// parseSession decodes a public-key-encrypted session key packet
// (spec.md §4.D "Public-key encrypted session key"). Grounded on
// packet.c's spgp_parse_session_packet.
func parseSession(c *cursor, h *Header) (*SessionBody, error) {
	version, err := c.readByte()
	if err != nil {
		return nil, err
	}
	if version != 3 {
		return nil, errf(ErrFormatUnsupported, "session packet version %d is not supported, only v3", version)
	}

	keyID, err := c.readN(8)
	if err != nil {
		return nil, err
	}

	algoByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	algo := AsymAlgo(algoByte)

	s := &SessionBody{Version: version, KeyID: keyID, AsymAlgo: algo}

	// The wire layout depends only on how many MPIs the algorithm's
	// encrypted session key takes: one for RSA, two (g^k and the
	// encrypted key) for Elgamal. Whether the algorithm itself is one
	// RecoverSessionKey will actually decrypt is a separate question,
	// decided later — packet.c's spgp_parse_session_packet reads
	// mpi1 unconditionally and only rejects unsupported algorithms at
	// decrypt time.
	switch algo {
	case AsymElgamal:
		m1, err := readMPI(c)
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "session mpi 1 (g^k)")
		}
		m2, err := readMPI(c)
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "session mpi 2 (encrypted key)")
		}
		s.MPI1 = m1
		s.MPI2 = m2
	case AsymRSA:
		m1, err := readMPI(c)
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "session mpi 1 (rsa encrypted key)")
		}
		s.MPI1 = m1
	default:
		return nil, errf(ErrFormatUnsupported, "session packet asymmetric algorithm %d is not supported", algo)
	}

	logf("session packet: keyid=% x algo=%d", keyID, algo)
	return s, nil
}

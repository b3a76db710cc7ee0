package openpgp

import "crypto/dsa"

// parsePublicKey decodes a version-4 public key or subkey body and
// computes its fingerprint (spec.md §4.D "Public key (v4)"). Grounded on
// packet.c's spgp_parse_public_key / spgp_read_all_public_mpis.
func parsePublicKey(c *cursor, h *Header) (*PublicKeyBody, error) {
	version, err := c.readByte()
	if err != nil {
		return nil, err
	}
	if version != 4 {
		return nil, errf(ErrFormatUnsupported, "public key version %d is not supported, only v4", version)
	}

	creationTime, err := c.readUint32BE()
	if err != nil {
		return nil, err
	}

	algoByte, err := c.readByte()
	if err != nil {
		return nil, err
	}
	algo := AsymAlgo(algoByte)

	var mpiCount int
	switch algo {
	case AsymDSA:
		mpiCount = 4 // p, q, g, y
	case AsymElgamal:
		mpiCount = 3 // p, g, y
	default:
		return nil, errf(ErrFormatUnsupported, "public key algorithm %d is not supported", algo)
	}

	mpis := make([]*MPI, 0, mpiCount)
	for i := 0; i < mpiCount; i++ {
		m, err := readMPI(c)
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "public key mpi %d", i)
		}
		mpis = append(mpis, m)
	}

	p := &PublicKeyBody{
		Version:      version,
		CreationTime: creationTime,
		AsymAlgo:     algo,
		MPIs:         mpis,
	}
	fp, err := computeFingerprint(p)
	if err != nil {
		return nil, err
	}
	p.Fingerprint = fp

	if dsaKey := p.DSAPublicKey(); dsaKey != nil {
		logf("public key: algo=%d creation=%d fingerprint=% x dsa_p_bits=%d", algo, creationTime, fp, dsaKey.P.BitLen())
	} else {
		logf("public key: algo=%d creation=%d fingerprint=% x", algo, creationTime, fp)
	}
	return p, nil
}

// DSAPublicKey builds a *dsa.PublicKey view of the parsed p/q/g/y MPI
// set, or nil if this body isn't a DSA key. Signature verification is out
// of scope (spec.md §1 Non-goals), but giving DSA keys a standard typed
// representation here, rather than leaving them as opaque MPIs forever,
// is what a future verification path would build on.
func (p *PublicKeyBody) DSAPublicKey() *dsa.PublicKey {
	if p.AsymAlgo != AsymDSA || len(p.MPIs) != 4 {
		return nil
	}
	return &dsa.PublicKey{
		Parameters: dsa.Parameters{
			P: p.MPIs[0].Int(),
			Q: p.MPIs[1].Int(),
			G: p.MPIs[2].Int(),
		},
		Y: p.MPIs[3].Int(),
	}
}

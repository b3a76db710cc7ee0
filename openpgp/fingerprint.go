package openpgp

import (
	"crypto/sha1"
)

// computeFingerprint computes the SHA-1 fingerprint of a v4 public key:
// 0x99, a 2-byte big-endian packet size, then the version, creation time,
// algorithm, and MPI wire encodings, exactly as they would appear in the
// original public key packet body (spec.md §4.E, packet.c
// spgp_generate_fingerprint).
//
// The creation-time field is hashed in the byte order packet.c actually
// uses, which is little-endian rather than the big-endian RFC 4880 wire
// order the rest of this field uses everywhere else. This is a bug in the
// original C source (see DESIGN.md Open Question 1) reproduced here
// deliberately: fixing it would silently change the fingerprint computed
// for every key this package decodes, and callers matching those
// fingerprints against an external keyring need the same (wrong) value
// the rest of the onlykey ecosystem computes.
func computeFingerprint(p *PublicKeyBody) ([]byte, error) {
	var body []byte
	body = append(body, p.Version)

	var ct [4]byte
	ct[0] = byte(p.CreationTime)
	ct[1] = byte(p.CreationTime >> 8)
	ct[2] = byte(p.CreationTime >> 16)
	ct[3] = byte(p.CreationTime >> 24)
	body = append(body, ct[:]...)

	body = append(body, byte(p.AsymAlgo))
	for _, m := range p.MPIs {
		body = append(body, m.Wire...)
	}

	if len(body) > 0xFFFF {
		return nil, errf(ErrFormatUnsupported, "public key body too large to fingerprint: %d bytes", len(body))
	}

	h := sha1.New()
	h.Write([]byte{0x99, byte(len(body) >> 8), byte(len(body))})
	h.Write(body)
	return h.Sum(nil), nil
}

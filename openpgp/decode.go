package openpgp

// Message is a fully framed OpenPGP message: the raw buffer it was
// decoded from, plus the ordered packet chain found in it. spec.md §9
// asks for this to be "an ordered container indexed by position" rather
// than the original's doubly-linked list with back-pointers; callers
// that need a related packet scan Packets instead of following a stored
// pointer (see secretKeyForSession, which searches the whole chain, and
// sessionBeforeSEIPD, which scans backward, below).
type Message struct {
	Buf     []byte
	Packets []*Packet
}

// DecodeMessage walks buf from front to back, framing and parsing every
// packet it contains (spec.md §4.I). It performs no decryption: secret
// keys are left encrypted and SEIPD ciphertext is left unreadable until
// DecryptAllSecretKeys, RecoverSessionKeys and DecryptAllSEIPD are run
// over the result. Grounded on packet.c's spgp_decode_message main loop.
//
// Partial-length SEIPD packets are compacted in place during this pass
// (see compactSegments): by the time DecodeMessage returns, every
// SEIPDBody.FirstSegment is the full contiguous ciphertext length and
// IsPartial is false, regardless of how the packet was actually framed
// on the wire.
func DecodeMessage(buf []byte) (*Message, error) {
	msg := &Message{Buf: buf}
	c := newCursor(buf)

	for !c.atEnd() {
		header, err := parseHeader(c)
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "packet at offset %d", c.idx)
		}

		pkt := &Packet{Header: header}
		switch header.Type {
		case PacketUserID:
			pkt.UserID, err = parseUserID(c, header)
		case PacketPublicKey, PacketPublicSubkey:
			pkt.Public, err = parsePublicKey(c, header)
		case PacketSecretKey, PacketSecretSubkey:
			pkt.Secret, err = parseSecretKey(c, header)
		case PacketSession:
			pkt.Session, err = parseSession(c, header)
		case PacketSymEncIntData:
			pkt.SEIPD, err = parseSEIPD(c, header)
			if err == nil && pkt.SEIPD.IsPartial {
				err = compactAndAdvance(c, buf, pkt.SEIPD)
			}
		default:
			logf("skipping unknown packet type %d at offset %d", header.Type, c.idx)
			err = c.advance(header.ContentLength)
		}
		if err != nil {
			return nil, wrapErr(ErrInvalidHeader, err, "packet type %d", header.Type)
		}

		msg.Packets = append(msg.Packets, pkt)
	}

	return msg, nil
}

// compactAndAdvance runs compactSegments for a partial SEIPD body found
// during the initial DecodeMessage pass, then advances c past the
// remainder of the packet's original (pre-compaction) span and rewrites
// body to describe the now-contiguous ciphertext.
func compactAndAdvance(c *cursor, buf []byte, body *SEIPDBody) error {
	ciphertextLen, originalSpan, segments, err := compactSegments(buf, body)
	if err != nil {
		return err
	}
	if err := c.advance(originalSpan - body.FirstSegment); err != nil {
		return err
	}
	body.FirstSegment = ciphertextLen
	body.Segments = segments
	body.IsPartial = false
	return nil
}

// DecryptAllSecretKeys decrypts every secret key or subkey packet in msg
// with passphrase (spec.md §4.F, packet.c's spgp_decrypt_all_secret_keys).
// Already-decrypted packets are skipped. The first failure is returned
// immediately: a wrong passphrase will fail every key identically, so
// there is nothing to gain from continuing.
func DecryptAllSecretKeys(msg *Message, passphrase []byte) error {
	for _, pkt := range msg.Packets {
		if pkt.Secret == nil {
			continue
		}
		if err := DecryptSecretKey(pkt.Secret, passphrase); err != nil {
			return wrapErr(ErrDecryptFailed, err, "secret key keyid=% x", pkt.Secret.Public.KeyID())
		}
	}
	return nil
}

// RecoverSessionKeys matches every session packet in msg against the
// secret key packet it targets (by key-id, spec.md §4.G) and recovers
// its session key. A matching secret key is looked for first among msg's
// own packets, then, if keychain is non-nil, among keychain's entries —
// mirroring packet.c's spgp_secret_key_matching_id, which scans a
// caller-supplied chain argument rather than only the message being
// decoded. Session packets with no matching decrypted secret key are
// left unrecovered rather than treated as an error: a message may carry
// session packets for recipients other than the one decoding it.
func RecoverSessionKeys(msg *Message, keychain Keychain) error {
	for i, pkt := range msg.Packets {
		if pkt.Session == nil {
			continue
		}
		secret := secretKeyForSession(msg, keychain, i)
		if secret == nil || !secret.IsDecrypted {
			logf("no decrypted secret key for session packet %d, skipping", i)
			continue
		}
		if err := RecoverSessionKey(pkt.Session, secret); err != nil {
			return wrapErr(ErrDecryptFailed, err, "session packet %d", i)
		}
	}
	return nil
}

// DecryptAllSEIPD decrypts every SEIPD packet in msg in place, each
// using the most recently preceding session packet that has a recovered
// key (spec.md §4.H, "most recent" rather than an ownership edge).
func DecryptAllSEIPD(msg *Message) error {
	for i, pkt := range msg.Packets {
		if pkt.SEIPD == nil {
			continue
		}
		session := sessionBeforeSEIPD(msg, i)
		if session == nil || session.Key == nil {
			return errf(ErrIncompletePacket, "no recovered session key precedes seipd packet %d", i)
		}
		if _, err := DecryptSEIPD(msg.Buf, pkt.SEIPD, session.SymAlgo, session.Key); err != nil {
			return wrapErr(ErrDecryptFailed, err, "seipd packet %d", i)
		}
	}
	return nil
}

// secretKeyForSession searches first msg's own packets, then keychain (if
// non-nil), for the secret key packet whose fingerprint-derived key-id
// matches a session packet's target key-id (spec.md §4.G, packet.c's
// spgp_secret_key_matching_id). A keychain typically lists keys before
// the session packets that target them, so msg's scan covers the whole
// chain rather than assuming a direction. Only already-decrypted
// keychain entries can satisfy a match, since an external keychain entry
// with no known passphrase is of no use to session-key recovery.
func secretKeyForSession(msg *Message, keychain Keychain, sessionIdx int) *SecretKeyBody {
	session := msg.Packets[sessionIdx].Session
	for _, pkt := range msg.Packets {
		if pkt.Secret == nil {
			continue
		}
		if keyIDsEqual(pkt.Secret.Public.KeyID(), session.KeyID) {
			return pkt.Secret
		}
	}

	if keychain == nil {
		return nil
	}
	it := keychain.Iterator()
	for it.Next() {
		entry := it.SecretKey()
		if entry == nil || !entry.IsDecrypted {
			continue
		}
		if keyIDsEqual(entry.Public.KeyID(), session.KeyID) {
			return entry
		}
	}
	return nil
}

// sessionBeforeSEIPD returns the nearest session packet before seipdIdx in
// the chain that has a recovered key, the "most recent session packet"
// lookup spec.md §4.H calls for (packet.c's spgp_find_session_packet).
// Session packets left unrecovered (addressed to other recipients) are
// passed over.
func sessionBeforeSEIPD(msg *Message, seipdIdx int) *SessionBody {
	for i := seipdIdx - 1; i >= 0; i-- {
		if s := msg.Packets[i].Session; s != nil && s.Key != nil {
			return s
		}
	}
	return nil
}

func keyIDsEqual(a, b []byte) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FreePacket exists for API parity with packet.c's spgp_free_packet; Go's
// garbage collector reclaims a Packet once nothing references it, so
// this is a deliberate no-op (DESIGN.md Open Question 6).
func FreePacket(*Packet) {}

package openpgp

// Packet is one decoded OpenPGP packet: a header plus a type-tagged body
// (spec.md §3). The chain that owns a Packet is an ordered slice, not a
// pointer-linked list — see decode.go and spec.md §9 "re-express ... as
// an ordered container indexed by position".
type Packet struct {
	Header *Header

	UserID *UserIDBody
	Public *PublicKeyBody
	Secret *SecretKeyBody
	Session *SessionBody
	SEIPD   *SEIPDBody
}

// UserIDBody is an opaque byte sequence, UTF-8 by convention but not
// validated by this package (spec.md §3, §4.D).
type UserIDBody struct {
	Data []byte
}

// AsymAlgo identifies a public-key algorithm (spec.md §6).
type AsymAlgo int

const (
	AsymElgamal AsymAlgo = 16
	AsymDSA     AsymAlgo = 17
	AsymRSA     AsymAlgo = 1
)

// PublicKeyBody is a version-4 public key or subkey body (spec.md §3).
type PublicKeyBody struct {
	Version      byte
	CreationTime uint32
	AsymAlgo     AsymAlgo
	MPIs         []*MPI
	Fingerprint  []byte // 20 bytes once computed, nil until then
}

// KeyID returns the last 8 bytes of the fingerprint, the OpenPGP v4
// key-id convention (spec.md §9 Open Question 4).
func (p *PublicKeyBody) KeyID() []byte {
	if len(p.Fingerprint) != 20 {
		return nil
	}
	return p.Fingerprint[12:20]
}

// SymAlgo identifies a symmetric cipher algorithm (spec.md §6).
type SymAlgo int

const (
	SymIDEA     SymAlgo = 1
	SymTripleDES SymAlgo = 2
	SymCAST5    SymAlgo = 3
	SymBlowfish SymAlgo = 4
	SymAES128   SymAlgo = 7
	SymAES192   SymAlgo = 8
	SymAES256   SymAlgo = 9
	SymTwofish  SymAlgo = 10
)

// HashAlgo identifies a hash algorithm (spec.md §6). Only SHA-1 is
// implemented, per spec.md §1 Non-goals.
type HashAlgo int

const (
	HashSHA1 HashAlgo = 2
)

// SecretKeyBody embeds a public key body plus the S2K and encrypted
// material needed to recover the secret MPIs (spec.md §3).
type SecretKeyBody struct {
	Public *PublicKeyBody

	S2KType       byte
	S2KEncryption SymAlgo
	S2KSpecifier  byte
	S2KHashAlgo   HashAlgo
	S2KSalt       []byte
	S2KCount      byte

	IV            []byte
	EncryptedData []byte
	IsDecrypted   bool
}

// SessionBody is a public-key-encrypted session key packet (spec.md §3).
type SessionBody struct {
	Version  byte
	KeyID    []byte // 8 bytes
	AsymAlgo AsymAlgo
	MPI1     *MPI
	MPI2     *MPI // Elgamal only

	SymAlgo SymAlgo // populated after recovery
	Key     []byte  // populated after recovery
}

// SEIPDBody is a Symmetrically Encrypted Integrity Protected Data packet
// (spec.md §3). The ciphertext itself lives in the shared message buffer
// (it is decrypted in place); this body only records where it starts and
// how long the first segment is.
type SEIPDBody struct {
	Version      byte
	StartOffset  int
	FirstSegment int
	// Segments records the ciphertext length of each partial-length
	// segment in wire order once the body has been compacted into a
	// single contiguous span (DecodeMessage does this eagerly; see
	// compactSegments). A non-partial body, or one built directly by a
	// caller without going through DecodeMessage, may leave this nil —
	// DecryptSEIPD then treats the whole of FirstSegment as one segment.
	Segments  []int
	IsPartial bool
	Decrypted bool
}

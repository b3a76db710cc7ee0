package openpgp

import "math/big"

// MPI is an OpenPGP multi-precision integer in on-wire form: a 2-byte
// big-endian bit count followed by ceil(bits/8) big-endian bytes
// (spec.md §3, §4.B). Wire keeps the full encoding (length prefix
// included) because several callers — fingerprinting, session-key MPI
// scanning — need the raw on-wire bytes, not just the integer value.
type MPI struct {
	Bits  uint16
	Bytes []byte // the integer's raw bytes only, length = ByteCount()
	Wire  []byte // length-prefix + Bytes, length = ByteCount()+2
}

// ByteCount returns ceil(Bits/8), the invariant from spec.md §3.
func (m *MPI) ByteCount() int {
	return (int(m.Bits) + 7) / 8
}

// Int converts the MPI to a big.Int for use with asymmetric primitives.
func (m *MPI) Int() *big.Int {
	return new(big.Int).SetBytes(m.Bytes)
}

// newMPI builds an MPI (and its wire encoding) from a raw big-endian value.
func newMPI(value []byte) *MPI {
	bits := bitLen(value)
	wire := make([]byte, 2+len(value))
	wire[0] = byte(bits >> 8)
	wire[1] = byte(bits)
	copy(wire[2:], value)
	return &MPI{Bits: uint16(bits), Bytes: value, Wire: wire}
}

func bitLen(b []byte) int {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	if i == len(b) {
		return 0
	}
	bits := (len(b) - i - 1) * 8
	v := b[i]
	for v != 0 {
		bits++
		v >>= 1
	}
	return bits
}

// readMPI decodes one MPI from the cursor (spec.md §4.B, §9
// spgp_read_mpi).
func readMPI(c *cursor) (*MPI, error) {
	hdr, err := c.readN(2)
	if err != nil {
		return nil, err
	}
	bits := uint16(hdr[0])<<8 | uint16(hdr[1])
	byteCount := (int(bits) + 7) / 8
	data, err := c.readN(byteCount)
	if err != nil {
		return nil, err
	}
	wire := make([]byte, 0, 2+byteCount)
	wire = append(wire, hdr...)
	wire = append(wire, data...)
	return &MPI{Bits: bits, Bytes: data, Wire: wire}, nil
}

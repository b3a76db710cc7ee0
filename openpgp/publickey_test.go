package openpgp

import "testing"

func oneByteMPI(v byte) []byte {
	bits := 0
	for x := v; x != 0; x >>= 1 {
		bits++
	}
	return []byte{0x00, byte(bits), v}
}

func TestDSAPublicKey(t *testing.T) {
	content := []byte{4, 0, 0, 0, 0, byte(AsymDSA)}
	for _, v := range []byte{0x0B, 0x03, 0x02, 0x05} { // p, q, g, y
		content = append(content, oneByteMPI(v)...)
	}
	buf := newFormatPacket(PacketPublicKey, content)
	m, err := DecodeMessage(buf)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}

	pub := m.Packets[0].Public
	dsaKey := pub.DSAPublicKey()
	if dsaKey == nil {
		t.Fatalf("expected a non-nil DSA public key")
	}
	if dsaKey.P.Int64() != 0x0B || dsaKey.Q.Int64() != 0x03 || dsaKey.G.Int64() != 0x02 || dsaKey.Y.Int64() != 0x05 {
		t.Errorf("DSA key fields = p=%s q=%s g=%s y=%s, want 11,3,2,5", dsaKey.P, dsaKey.Q, dsaKey.G, dsaKey.Y)
	}
}

func TestDSAPublicKeyNilForElgamal(t *testing.T) {
	content := []byte{4, 0, 0, 0, 0, byte(AsymElgamal)}
	for i := 0; i < 3; i++ {
		content = append(content, oneByteMPI(0x01)...)
	}
	buf := newFormatPacket(PacketPublicKey, content)
	m, err := DecodeMessage(buf)
	if err != nil {
		t.Fatalf("DecodeMessage: %v", err)
	}
	if got := m.Packets[0].Public.DSAPublicKey(); got != nil {
		t.Errorf("expected nil DSA key for an Elgamal public key body, got %+v", got)
	}
}

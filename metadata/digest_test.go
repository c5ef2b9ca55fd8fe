package metadata

import (
	"bytes"
	"testing"
)

func TestNormalizeDigest_Precedence(t *testing.T) {
	ipfs := []byte{0x00, 0x00, 0x01}
	v0 := []byte{0xaa}
	v1 := []byte{0xbb}

	cases := []struct {
		name string
		f    Fields
		want string
	}{
		{"none", Fields{}, ""},
		{"ipfs only", Fields{IPFS: ipfs}, "ipfs://112"},
		{"bzzr0 only", Fields{SwarmV0: v0}, "bzz://aa"},
		{"bzzr1 only", Fields{SwarmV1: v1}, "bzz://bb"},
		{"bzzr0 and bzzr1", Fields{SwarmV0: v0, SwarmV1: v1}, "bzz://bb"},
		{"ipfs and bzzr1", Fields{IPFS: ipfs, SwarmV1: v1}, "ipfs://112"},
		{"all three", Fields{IPFS: ipfs, SwarmV0: v0, SwarmV1: v1}, "ipfs://112"},
		{"empty ipfs still wins", Fields{IPFS: []byte{}, SwarmV1: v1}, "ipfs://"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NormalizeDigest(tc.f)
			if tc.want == "" {
				if d != nil {
					t.Fatalf("expected no digest, got %s", d)
				}
				return
			}
			if d == nil {
				t.Fatalf("expected %s, got nil", tc.want)
			}
			if d.String() != tc.want {
				t.Fatalf("got %s want %s", d, tc.want)
			}
		})
	}
}

func TestDigest_KnownIPFSVector(t *testing.T) {
	// sha2-256 multihash of "solcmeta conformance: ipfs".
	raw := []byte{
		0x12, 0x20,
		0x72, 0xe8, 0x8d, 0x2c, 0x9e, 0xfa, 0x6d, 0x1c, 0x7b, 0x7f, 0x24, 0xce, 0xf9, 0xba, 0x9d, 0x11,
		0x3d, 0x13, 0xf1, 0x76, 0x40, 0xc6, 0x5a, 0x62, 0x5f, 0xbf, 0x65, 0x47, 0x28, 0x82, 0xe3, 0xfd,
	}
	d := NewIPFSDigest(raw)
	if d.Value() != "QmW5CreSensHLKiWobCwnNhbSXyfKz3yc6mZe54PJAqngc" {
		t.Fatalf("unexpected base58: %s", d.Value())
	}
	if d.Kind() != DigestIPFS || d.Kind().String() != "ipfs" {
		t.Fatalf("unexpected kind: %s", d.Kind())
	}
}

func TestDigest_SwarmIsLowercaseHex(t *testing.T) {
	d := NewSwarmDigest([]byte{0xAB, 0xCD, 0x0F})
	if d.Value() != "abcd0f" {
		t.Fatalf("unexpected hex: %s", d.Value())
	}
	if d.String() != "bzz://abcd0f" {
		t.Fatalf("unexpected rendering: %s", d)
	}
}

func TestDigest_BytesIsCopy(t *testing.T) {
	raw := []byte{0x01, 0x02}
	d := NewSwarmDigest(raw)
	raw[0] = 0xff
	b := d.Bytes()
	if !bytes.Equal(b, []byte{0x01, 0x02}) {
		t.Fatalf("digest aliased caller bytes: %x", b)
	}
	b[1] = 0xff
	if !bytes.Equal(d.Bytes(), []byte{0x01, 0x02}) {
		t.Fatalf("Bytes exposed internal state")
	}
}

func TestParseDigest_RoundTrip(t *testing.T) {
	for _, d := range []Digest{
		NewIPFSDigest([]byte{0x12, 0x20, 0x00, 0x01}),
		NewSwarmDigest(bytes.Repeat([]byte{0x7f}, 32)),
		NewIPFSDigest([]byte{}),
	} {
		got, err := ParseDigest(d.Kind(), d.Value())
		if err != nil {
			t.Fatalf("ParseDigest(%s): %v", d, err)
		}
		if !got.Equal(d) || !bytes.Equal(got.Bytes(), d.Bytes()) {
			t.Fatalf("round trip mismatch: got %s want %s", got, d)
		}
	}
	if _, err := ParseDigest(DigestSwarm, "zz"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	if _, err := ParseDigest(DigestKind(9), "x"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

package cidutil

import (
	"testing"

	"github.com/multiformats/go-multihash"

	"xdao.co/solcmeta/metadata"
)

func TestInspectDigest_SHA256(t *testing.T) {
	mh, err := multihash.Sum([]byte("solcmeta conformance: ipfs"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatalf("multihash.Sum: %v", err)
	}
	info, err := InspectDigest(mh)
	if err != nil {
		t.Fatalf("InspectDigest: %v", err)
	}
	if info.HashFunction != "sha2-256" || info.Length != 32 {
		t.Fatalf("unexpected multihash info: %+v", info)
	}
	// The canonical base58 digest value is the CIDv0 string.
	d := metadata.NewIPFSDigest(mh)
	if info.CIDv0 != d.Value() {
		t.Fatalf("CIDv0 mismatch: got %s want %s", info.CIDv0, d.Value())
	}
	if info.CIDv0 != "QmW5CreSensHLKiWobCwnNhbSXyfKz3yc6mZe54PJAqngc" {
		t.Fatalf("unexpected CIDv0: %s", info.CIDv0)
	}

	c, err := CIDv1(mh)
	if err != nil {
		t.Fatalf("CIDv1: %v", err)
	}
	if c.String() != info.CIDv1 {
		t.Fatalf("CIDv1 mismatch: %s vs %s", c, info.CIDv1)
	}
	if c.Version() != 1 || c.Hash().B58String() != d.Value() {
		t.Fatalf("CIDv1 does not wrap the digest multihash")
	}
}

func TestInspectDigest_NotMultihash(t *testing.T) {
	if _, err := InspectDigest([]byte{0x12}); err == nil {
		t.Fatalf("expected error for truncated multihash")
	}
	if _, err := CIDv1([]byte{0x12, 0x20, 0x01}); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
}

// Package metadatatest provides a conformance suite that any metadata
// decoder (in-process or remote) must pass.
package metadatatest

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"

	"xdao.co/solcmeta/metadata"
)

// DecodeFunc decodes contract bytecode into canonical metadata.
type DecodeFunc func(code []byte) (metadata.Metadata, error)

// Prefix is arbitrary runtime bytecode placed in front of generated trailers.
var Prefix = []byte{0x60, 0x80, 0x60, 0x40, 0x52, 0x60, 0x00, 0x80, 0xfd, 0xfe}

// BuildCode encodes f as a trailer and appends it to Prefix.
func BuildCode(t *testing.T, f metadata.Fields) []byte {
	t.Helper()
	trailer, err := metadata.EncodeTrailer(f)
	if err != nil {
		t.Fatalf("EncodeTrailer: %v", err)
	}
	return append(append([]byte{}, Prefix...), trailer...)
}

func RunDecoderConformance(t *testing.T, decode DecodeFunc) {
	t.Helper()

	t.Run("InsufficientData", func(t *testing.T) {
		for _, code := range [][]byte{nil, {}, {0x00}} {
			_, err := decode(code)
			if !metadata.IsKind(err, metadata.KindInsufficientData) {
				t.Fatalf("decode(%x): expected InsufficientData, got %v", code, err)
			}
		}
	})

	t.Run("TrailerOverrun", func(t *testing.T) {
		for _, code := range [][]byte{{0x00, 0x01}, {0xaa, 0xff, 0xff}, {0x01, 0x02, 0x03, 0x00, 0x04}} {
			_, err := decode(code)
			if !metadata.IsKind(err, metadata.KindTrailerOverrun) {
				t.Fatalf("decode(%x): expected TrailerOverrun, got %v", code, err)
			}
		}
	})

	t.Run("IPFSAndVersion", func(t *testing.T) {
		h := []byte{0x12, 0x20, 0xde, 0xad, 0xbe, 0xef}
		md, err := decode(BuildCode(t, metadata.Fields{IPFS: h, Solc: []byte{7, 0, 6}}))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if md.Digest == nil || md.Digest.Kind() != metadata.DigestIPFS {
			t.Fatalf("expected IPFS digest, got %v", md.Digest)
		}
		if md.Digest.Value() != base58.Encode(h) {
			t.Fatalf("digest mismatch: got %s want %s", md.Digest.Value(), base58.Encode(h))
		}
		if md.CompilerVersion == nil || *md.CompilerVersion != (metadata.CompilerVersion{Major: 7, Minor: 0, Patch: 6}) {
			t.Fatalf("version mismatch: %v", md.CompilerVersion)
		}
		if md.Experimental {
			t.Fatalf("experimental should default to false")
		}
	})

	t.Run("SwarmV1WinsOverV0", func(t *testing.T) {
		a := bytes.Repeat([]byte{0xaa}, 32)
		b := bytes.Repeat([]byte{0xbb}, 32)
		md, err := decode(BuildCode(t, metadata.Fields{SwarmV0: a, SwarmV1: b}))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if md.Digest == nil || md.Digest.Kind() != metadata.DigestSwarm {
			t.Fatalf("expected Swarm digest, got %v", md.Digest)
		}
		if md.Digest.Value() != hex.EncodeToString(b) {
			t.Fatalf("expected bzzr1 digest, got %s", md.Digest.Value())
		}
	})

	t.Run("IPFSWinsOverSwarm", func(t *testing.T) {
		x := []byte{0x12, 0x20, 0x01, 0x02}
		y := bytes.Repeat([]byte{0xcc}, 32)
		md, err := decode(BuildCode(t, metadata.Fields{IPFS: x, SwarmV1: y}))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if md.Digest == nil || md.Digest.String() != "ipfs://"+base58.Encode(x) {
			t.Fatalf("expected IPFS digest, got %v", md.Digest)
		}
	})

	t.Run("InvalidVersionLength", func(t *testing.T) {
		for _, solc := range [][]byte{{}, {0}, {0, 8}, {0, 8, 1, 0}} {
			_, err := decode(BuildCode(t, metadata.Fields{Solc: solc}))
			if !metadata.IsKind(err, metadata.KindInvalidVersionLength) {
				t.Fatalf("solc %x: expected InvalidVersionLength, got %v", solc, err)
			}
		}
	})

	t.Run("NoFields", func(t *testing.T) {
		md, err := decode(BuildCode(t, metadata.Fields{}))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if md.Digest != nil || md.CompilerVersion != nil || md.Experimental {
			t.Fatalf("expected empty metadata, got %+v", md)
		}
	})

	t.Run("EndToEnd", func(t *testing.T) {
		h := bytes.Repeat([]byte{0x5a}, 34)
		f := false
		md, err := decode(BuildCode(t, metadata.Fields{IPFS: h, Solc: []byte{0, 7, 6}, Experimental: &f}))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := metadata.NewIPFSDigest(h)
		if md.Digest == nil || !md.Digest.Equal(want) {
			t.Fatalf("digest mismatch: got %v want %v", md.Digest, want)
		}
		if md.CompilerVersion == nil || md.CompilerVersion.String() != "0.7.6" {
			t.Fatalf("version mismatch: %v", md.CompilerVersion)
		}
		if md.Experimental {
			t.Fatalf("experimental mismatch")
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		code, err := metadata.AppendTrailer(Prefix, []byte{0x83, 0x01, 0x02, 0x03})
		if err != nil {
			t.Fatalf("AppendTrailer: %v", err)
		}
		_, err = decode(code)
		if !metadata.IsKind(err, metadata.KindMalformed) {
			t.Fatalf("expected MalformedStructuredData, got %v", err)
		}
	})
}

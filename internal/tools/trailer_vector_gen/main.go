// trailer_vector_gen writes the decoder conformance vectors under
// testdata/conformance/solcmeta.
//
// Each vector is a .hex file (0x-prefixed bytecode, one line) and a .want
// file holding the expected decoder result.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/multiformats/go-multihash"
	"github.com/spf13/pflag"

	"xdao.co/solcmeta/metadata"
)

// body is the runtime bytecode every vector's trailer is appended to.
const body = "6080604052348015600f57600080fd5b50603f80601d6000396000f3fe6080604052600080fdfe"

type vector struct {
	name string
	// Exactly one of fields, raw or bare is used. raw carries maps that
	// metadata.EncodeFields cannot produce; bare is appended verbatim.
	fields *metadata.Fields
	raw    map[string]any
	bare   []byte
	want string
}

func main() {
	out := pflag.String("out", filepath.Join("testdata", "conformance", "solcmeta"), "output directory")
	pflag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dir string) error {
	code, err := hex.DecodeString(body)
	if err != nil {
		return err
	}
	ipfs, err := multihash.Sum([]byte("solcmeta conformance: ipfs"), multihash.SHA2_256, -1)
	if err != nil {
		return err
	}
	bzzr0 := sha256.Sum256([]byte("solcmeta conformance: bzzr0"))
	bzzr1 := sha256.Sum256([]byte("solcmeta conformance: bzzr1"))

	ipfsWant := "digest: " + metadata.NewIPFSDigest(ipfs).String() + "\n"
	bzzr0Want := "digest: bzz://" + hex.EncodeToString(bzzr0[:]) + "\n"
	bzzr1Want := "digest: bzz://" + hex.EncodeToString(bzzr1[:]) + "\n"
	yes := true

	vectors := []vector{
		{
			name:   "ipfs_solc",
			fields: &metadata.Fields{IPFS: ipfs, Solc: []byte{0, 8, 10}},
			want:   ipfsWant + "experimental: false\nsolc: 0.8.10\n",
		},
		{
			name:   "ipfs_experimental_solc",
			fields: &metadata.Fields{IPFS: ipfs, Experimental: &yes, Solc: []byte{0, 8, 4}},
			want:   ipfsWant + "experimental: true\nsolc: 0.8.4\n",
		},
		{
			name:   "bzzr1_solc",
			fields: &metadata.Fields{SwarmV1: bzzr1[:], Solc: []byte{0, 5, 11}},
			want:   bzzr1Want + "experimental: false\nsolc: 0.5.11\n",
		},
		{
			name:   "bzzr0",
			fields: &metadata.Fields{SwarmV0: bzzr0[:]},
			want:   bzzr0Want + "experimental: false\nsolc: none\n",
		},
		{
			name:   "bzzr0_bzzr1",
			fields: &metadata.Fields{SwarmV0: bzzr0[:], SwarmV1: bzzr1[:]},
			want:   bzzr1Want + "experimental: false\nsolc: none\n",
		},
		{
			name:   "ipfs_bzzr1",
			fields: &metadata.Fields{IPFS: ipfs, SwarmV1: bzzr1[:]},
			want:   ipfsWant + "experimental: false\nsolc: none\n",
		},
		{
			name: "unknown_key",
			raw: map[string]any{
				metadata.KeyIPFS: ipfs,
				metadata.KeySolc: []byte{0, 8, 26},
				"vyper":          []byte{0, 4, 0},
			},
			want: ipfsWant + "experimental: false\nsolc: 0.8.26\n",
		},
		{
			name:   "solc_short",
			fields: &metadata.Fields{IPFS: ipfs, Solc: []byte{0, 8}},
			want:   "error: " + metadata.RuleVersionLength + "\n",
		},
		{
			name: "experimental_not_bool",
			raw:  map[string]any{metadata.KeyExperimental: 1},
			want: "error: " + metadata.RuleFieldType + "\n",
		},
		{
			// {"solc": h'000806', "solc": h'000807'} with its length field.
			name: "duplicate_solc",
			bare: []byte{
				0xa2,
				0x64, 's', 'o', 'l', 'c', 0x43, 0x00, 0x08, 0x06,
				0x64, 's', 'o', 'l', 'c', 0x43, 0x00, 0x08, 0x07,
				0x00, 0x13,
			},
			want: "error: " + metadata.RuleMalformedCBOR + "\n",
		},
		{
			name: "not_a_map",
			bare: []byte{0x80, 0x00, 0x02},
			want: "error: " + metadata.RuleMalformedCBOR + "\n",
		},
		{
			// The body's last two bytes read as a length far past the buffer.
			name: "no_trailer",
			bare: []byte{},
			want: "error: " + metadata.RuleTrailerOverrun + "\n",
		},
	}

	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, v := range vectors {
		var full []byte
		switch {
		case v.fields != nil:
			trailer, err := metadata.EncodeTrailer(*v.fields)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			full = append(append([]byte{}, code...), trailer...)
		case v.raw != nil:
			b, err := em.Marshal(v.raw)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			if full, err = metadata.AppendTrailer(code, b); err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
		default:
			full = append(append([]byte{}, code...), v.bare...)
		}

		base := filepath.Join(dir, v.name)
		if err := os.WriteFile(base+".hex", []byte("0x"+hex.EncodeToString(full)+"\n"), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(base+".want", []byte(v.want), 0o644); err != nil {
			return err
		}
		fmt.Printf("%s\t%d bytes\n", v.name, len(full))
	}
	return nil
}

// Package cidutil interprets IPFS digests found in metadata trailers.
//
// solc embeds the raw multihash of the metadata document. Its base58btc
// encoding is the CIDv0 string; the same multihash can also be addressed as
// a CIDv1 with the dag-pb codec.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// DigestInfo describes a multihash-encoded IPFS digest.
type DigestInfo struct {
	// HashFunction is the multihash function name, e.g. "sha2-256".
	HashFunction string
	// Length is the declared digest length in bytes.
	Length int
	// CIDv0 is the base58btc string (identical to the canonical digest value).
	CIDv0 string
	// CIDv1 is the base32 dag-pb CIDv1 string.
	CIDv1 string
}

// InspectDigest decodes raw as a multihash. Digests that are not valid
// multihashes return an error; the canonical base58 value remains usable
// regardless.
func InspectDigest(raw []byte) (DigestInfo, error) {
	c, err := CIDv1(raw)
	if err != nil {
		return DigestInfo{}, err
	}
	mh := c.Hash()
	dh, err := multihash.Decode(mh)
	if err != nil {
		return DigestInfo{}, err
	}
	info := DigestInfo{
		HashFunction: dh.Name,
		Length:       dh.Length,
		CIDv1:        c.String(),
	}
	// CIDv0 is only defined for sha2-256 multihashes.
	if dh.Code == multihash.SHA2_256 && dh.Length == 32 {
		info.CIDv0 = cid.NewCidV0(mh).String()
	}
	return info, nil
}

// CIDv1 returns the dag-pb CIDv1 for a raw multihash digest.
func CIDv1(raw []byte) (cid.Cid, error) {
	mh, err := multihash.Cast(raw)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.DagProtobuf, mh), nil
}

package metadata

import (
	"encoding/hex"
	"errors"

	"github.com/mr-tron/base58"
)

// DigestKind identifies the storage network a digest belongs to. The set is
// closed: IPFS and Swarm.
type DigestKind uint8

const (
	DigestIPFS DigestKind = iota + 1
	DigestSwarm
)

func (k DigestKind) String() string {
	switch k {
	case DigestIPFS:
		return "ipfs"
	case DigestSwarm:
		return "swarm"
	default:
		return "unknown"
	}
}

// Scheme returns the URI scheme used when rendering a digest of this kind.
func (k DigestKind) Scheme() string {
	switch k {
	case DigestIPFS:
		return "ipfs"
	case DigestSwarm:
		return "bzz"
	default:
		return ""
	}
}

var errUnknownDigestKind = errors.New("metadata: unknown digest kind")

// Digest is the single canonical content digest of a metadata trailer.
//
// Value is the canonical textual form: base58 (Bitcoin alphabet) for IPFS,
// lowercase hex for Swarm.
type Digest struct {
	kind  DigestKind
	value string
	raw   []byte
}

// NewIPFSDigest builds an IPFS digest from raw multihash bytes.
func NewIPFSDigest(raw []byte) Digest {
	return Digest{kind: DigestIPFS, value: base58.Encode(raw), raw: clone(raw)}
}

// NewSwarmDigest builds a Swarm digest from raw hash bytes.
func NewSwarmDigest(raw []byte) Digest {
	return Digest{kind: DigestSwarm, value: hex.EncodeToString(raw), raw: clone(raw)}
}

// ParseDigest rebuilds a digest from its kind and canonical value.
func ParseDigest(kind DigestKind, value string) (Digest, error) {
	switch kind {
	case DigestIPFS:
		if value == "" {
			return Digest{kind: kind, raw: []byte{}}, nil
		}
		raw, err := base58.Decode(value)
		if err != nil {
			return Digest{}, err
		}
		return Digest{kind: kind, value: value, raw: raw}, nil
	case DigestSwarm:
		raw, err := hex.DecodeString(value)
		if err != nil {
			return Digest{}, err
		}
		return Digest{kind: kind, value: hex.EncodeToString(raw), raw: raw}, nil
	default:
		return Digest{}, errUnknownDigestKind
	}
}

func (d Digest) Kind() DigestKind { return d.kind }

// Value returns the canonical textual encoding without a scheme.
func (d Digest) Value() string { return d.value }

// Bytes returns a copy of the raw digest bytes.
func (d Digest) Bytes() []byte { return clone(d.raw) }

// String renders the digest as ipfs://<base58> or bzz://<hex>.
func (d Digest) String() string {
	return d.kind.Scheme() + "://" + d.value
}

// Equal reports whether two digests have the same kind and value.
func (d Digest) Equal(o Digest) bool {
	return d.kind == o.kind && d.value == o.value
}

// NormalizeDigest picks the canonical digest among the trailer fields.
//
// IPFS wins over Swarm, and Swarm v1 (bzzr1) wins over v0 (bzzr0). Returns
// nil when no digest field is present.
func NormalizeDigest(f Fields) *Digest {
	var d Digest
	switch {
	case f.IPFS != nil:
		d = NewIPFSDigest(f.IPFS)
	case f.SwarmV1 != nil:
		d = NewSwarmDigest(f.SwarmV1)
	case f.SwarmV0 != nil:
		d = NewSwarmDigest(f.SwarmV0)
	default:
		return nil
	}
	return &d
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}

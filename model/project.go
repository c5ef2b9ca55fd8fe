package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	"xdao.co/solcmeta/cidutil"
	"xdao.co/solcmeta/metadata"
)

// DefaultGatewayPrefix is the IPFS HTTP gateway used when none is configured.
const DefaultGatewayPrefix = "https://ipfs.io/ipfs"

// GatewayURL joins a gateway prefix and a base58 IPFS digest.
func GatewayURL(prefix, value string) string {
	return strings.TrimRight(prefix, "/") + "/" + value
}

// FromMetadata projects md into its JSON view. gatewayPrefix may be empty,
// in which case no gateway URL is produced.
func FromMetadata(md metadata.Metadata, gatewayPrefix string) Metadata {
	out := Metadata{Experimental: md.Experimental}
	if d := md.Digest; d != nil {
		raw := d.Bytes()
		out.Digest = &Digest{
			Network: d.Kind().String(),
			Value:   d.Value(),
			URI:     d.String(),
			Raw:     "0x" + hex.EncodeToString(raw),
		}
		if d.Kind() == metadata.DigestIPFS {
			if info, err := cidutil.InspectDigest(raw); err == nil {
				out.Digest.Multihash = &Multihash{
					Function: info.HashFunction,
					Length:   info.Length,
					CIDv1:    info.CIDv1,
				}
			}
			if gatewayPrefix != "" {
				out.GatewayURL = GatewayURL(gatewayPrefix, d.Value())
			}
		}
	}
	if v := md.CompilerVersion; v != nil {
		out.CompilerVersion = &CompilerVersion{
			Major: v.Major,
			Minor: v.Minor,
			Patch: v.Patch,
			Text:  v.String(),
		}
	}
	return out
}

// ToMetadata rebuilds the canonical metadata from its JSON view.
func (m *Metadata) ToMetadata() (metadata.Metadata, error) {
	var md metadata.Metadata
	if m == nil {
		return md, fmt.Errorf("model: nil metadata")
	}
	md.Experimental = m.Experimental
	if m.Digest != nil {
		var kind metadata.DigestKind
		switch m.Digest.Network {
		case metadata.DigestIPFS.String():
			kind = metadata.DigestIPFS
		case metadata.DigestSwarm.String():
			kind = metadata.DigestSwarm
		default:
			return md, fmt.Errorf("model: unknown digest network %q", m.Digest.Network)
		}
		d, err := metadata.ParseDigest(kind, m.Digest.Value)
		if err != nil {
			return md, fmt.Errorf("model: invalid digest value: %w", err)
		}
		md.Digest = &d
	}
	if v := m.CompilerVersion; v != nil {
		md.CompilerVersion = &metadata.CompilerVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
	return md, nil
}

// Package metadata decodes the CBOR metadata trailer that Solidity appends
// to contract bytecode.
//
// The trailer is a CBOR map followed by its own length as a big-endian
// uint16. It carries a content digest of the compiler's metadata document
// (IPFS or Swarm), the compiler version and an experimental-features flag.
// Decoding is a pure function of the input bytes.
package metadata

import (
	"fmt"
	"strings"

	"xdao.co/solcmeta/compliance"
)

// Metadata is the canonical view of a metadata trailer.
type Metadata struct {
	// Digest retrieves the metadata document from a content-addressed store.
	// nil when the trailer has no digest field.
	Digest *Digest
	// Experimental reports whether experimental compiler features were enabled.
	Experimental bool
	// CompilerVersion is nil when the trailer has no solc field.
	CompilerVersion *CompilerVersion
}

// Options controls decoder compliance behavior.
//
// Default behavior is Permissive when Options{} is used.
type Options struct {
	Mode compliance.ComplianceMode
}

// Decode locates, decodes and normalizes the metadata trailer of code.
//
// Errors are reported in pipeline order: locator errors first, then CBOR
// errors, then version errors.
func Decode(code []byte) (Metadata, error) {
	return DecodeWithOptions(code, Options{})
}

// DecodeWithOptions runs Decode and then applies the requested compliance
// mode. Strict mode rejects trailers carrying more than one digest field or
// any unrecognized key.
func DecodeWithOptions(code []byte, opts Options) (Metadata, error) {
	v, err := Locate(code)
	if err != nil {
		return Metadata{}, err
	}
	f, err := DecodeFields(v.Bytes(code))
	if err != nil {
		return Metadata{}, err
	}
	if opts.Mode == compliance.Strict {
		if err := enforceStrictFields(f); err != nil {
			return Metadata{}, err
		}
	}
	return FromFields(f)
}

// FromFields normalizes decoded trailer fields.
func FromFields(f Fields) (Metadata, error) {
	version, err := ParseCompilerVersion(f.Solc)
	if err != nil {
		return Metadata{}, err
	}
	md := Metadata{
		Digest:          NormalizeDigest(f),
		CompilerVersion: version,
	}
	if f.Experimental != nil {
		md.Experimental = *f.Experimental
	}
	return md, nil
}

func enforceStrictFields(f Fields) error {
	if n := f.DigestCount(); n > 1 {
		return newError(KindAmbiguous, RuleAmbiguousDigest,
			fmt.Sprintf("strict mode: %d digest fields present", n))
	}
	if len(f.Unknown) > 0 {
		return newError(KindUnknownField, RuleUnknownField,
			fmt.Sprintf("strict mode: unrecognized fields: %s", strings.Join(f.Unknown, ", ")))
	}
	return nil
}

// Fields returns the trailer fields that encode md. Experimental is only set
// when true, as solc omits the key otherwise.
func (md Metadata) Fields() Fields {
	var f Fields
	if md.Digest != nil {
		switch md.Digest.Kind() {
		case DigestIPFS:
			f.IPFS = md.Digest.Bytes()
		case DigestSwarm:
			f.SwarmV1 = md.Digest.Bytes()
		}
	}
	if md.Experimental {
		t := true
		f.Experimental = &t
	}
	if md.CompilerVersion != nil {
		f.Solc = md.CompilerVersion.Bytes()
	}
	return f
}

package metadata

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// fields always produce identical trailer bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("metadata: CBOR encoder initialization failed: " + err.Error())
	}
}

// EncodeFields serializes the present fields as a CBOR map. Unknown keys
// are not encoded.
func EncodeFields(f Fields) ([]byte, error) {
	m := make(map[string]any, 5)
	if f.IPFS != nil {
		m[KeyIPFS] = f.IPFS
	}
	if f.SwarmV0 != nil {
		m[KeySwarmV0] = f.SwarmV0
	}
	if f.SwarmV1 != nil {
		m[KeySwarmV1] = f.SwarmV1
	}
	if f.Experimental != nil {
		m[KeyExperimental] = *f.Experimental
	}
	if f.Solc != nil {
		m[KeySolc] = f.Solc
	}
	return encMode.Marshal(m)
}

// EncodeTrailer serializes f and appends the 2-byte big-endian length field,
// producing bytes suitable for appending to contract bytecode.
func EncodeTrailer(f Fields) ([]byte, error) {
	b, err := EncodeFields(f)
	if err != nil {
		return nil, err
	}
	return AppendTrailer(nil, b)
}

// AppendTrailer appends a raw CBOR trailer and its length field to code.
func AppendTrailer(code, trailer []byte) ([]byte, error) {
	if len(trailer) > math.MaxUint16 {
		return nil, fmt.Errorf("metadata: trailer too long: %d bytes", len(trailer))
	}
	out := make([]byte, 0, len(code)+len(trailer)+LengthFieldSize)
	out = append(out, code...)
	out = append(out, trailer...)
	return binary.BigEndian.AppendUint16(out, uint16(len(trailer))), nil
}

package metadata

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// Recognized trailer keys.
const (
	KeyIPFS         = "ipfs"
	KeySwarmV0      = "bzzr0"
	KeySwarmV1      = "bzzr1"
	KeyExperimental = "experimental"
	KeySolc         = "solc"
)

// decMode decodes standard CBOR and rejects maps with duplicate keys.
var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("metadata: CBOR decoder initialization failed: " + err.Error())
	}
}

// Fields holds the recognized trailer entries.
//
// A nil byte slice means the key was absent or null; a present but empty
// byte string decodes to a non-nil empty slice. Experimental is nil when
// absent or null.
type Fields struct {
	IPFS         []byte
	SwarmV0      []byte
	SwarmV1      []byte
	Experimental *bool
	Solc         []byte

	// Unknown lists unrecognized keys, sorted.
	Unknown []string
}

// DigestCount reports how many digest fields are present.
func (f Fields) DigestCount() int {
	n := 0
	for _, b := range [][]byte{f.IPFS, f.SwarmV0, f.SwarmV1} {
		if b != nil {
			n++
		}
	}
	return n
}

// DecodeFields decodes a CBOR trailer and extracts the recognized keys.
// Unrecognized keys are recorded in Unknown and otherwise ignored.
func DecodeFields(trailer []byte) (Fields, error) {
	var f Fields
	if len(trailer) == 0 {
		return f, newError(KindMalformed, RuleMalformedCBOR, "malformed metadata: empty trailer")
	}
	// Major type 5 is a map. A bare null or other top-level item would
	// otherwise decode into a nil map without complaint.
	if trailer[0]>>5 != 5 {
		return f, newError(KindMalformed, RuleMalformedCBOR,
			fmt.Sprintf("malformed metadata: top-level item is not a map (initial byte 0x%02x)", trailer[0]))
	}

	var entries map[string]cbor.RawMessage
	if err := decMode.Unmarshal(trailer, &entries); err != nil {
		return f, wrapError(KindMalformed, RuleMalformedCBOR, "malformed metadata", err)
	}

	for key, raw := range entries {
		var err error
		switch key {
		case KeyIPFS:
			f.IPFS, err = decodeByteString(key, raw)
		case KeySwarmV0:
			f.SwarmV0, err = decodeByteString(key, raw)
		case KeySwarmV1:
			f.SwarmV1, err = decodeByteString(key, raw)
		case KeySolc:
			f.Solc, err = decodeByteString(key, raw)
		case KeyExperimental:
			f.Experimental, err = decodeBool(key, raw)
		default:
			f.Unknown = append(f.Unknown, key)
		}
		if err != nil {
			return Fields{}, err
		}
	}
	sort.Strings(f.Unknown)
	return f, nil
}

func decodeByteString(key string, raw cbor.RawMessage) ([]byte, error) {
	var v any
	if err := decMode.Unmarshal(raw, &v); err != nil {
		return nil, wrapError(KindMalformed, RuleFieldType, fmt.Sprintf("malformed metadata: field %q", key), err)
	}
	if v == nil {
		return nil, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, wrapError(KindMalformed, RuleFieldType, fmt.Sprintf("malformed metadata: field %q", key),
			fmt.Errorf("expected byte string, got %s", describe(v)))
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func decodeBool(key string, raw cbor.RawMessage) (*bool, error) {
	var v any
	if err := decMode.Unmarshal(raw, &v); err != nil {
		return nil, wrapError(KindMalformed, RuleFieldType, fmt.Sprintf("malformed metadata: field %q", key), err)
	}
	if v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, wrapError(KindMalformed, RuleFieldType, fmt.Sprintf("malformed metadata: field %q", key),
			fmt.Errorf("expected bool, got %s", describe(v)))
	}
	return &b, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "text string"
	case bool:
		return "bool"
	case uint64, int64:
		return "integer"
	case []any:
		return "array"
	case cbor.Tag, cbor.RawTag:
		return "tagged item"
	default:
		return fmt.Sprintf("%T", v)
	}
}

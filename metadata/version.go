package metadata

import "fmt"

// CompilerVersionLength is the size of the solc field.
const CompilerVersionLength = 3

// CompilerVersion is the major.minor.patch version of the Solidity compiler
// that produced the bytecode.
type CompilerVersion struct {
	Major uint8
	Minor uint8
	Patch uint8
}

func (v CompilerVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bytes returns the 3-byte trailer encoding of v.
func (v CompilerVersion) Bytes() []byte {
	return []byte{v.Major, v.Minor, v.Patch}
}

// ParseCompilerVersion interprets the solc field. A nil slice (field absent)
// yields nil without error; any length other than 3 is rejected.
func ParseCompilerVersion(b []byte) (*CompilerVersion, error) {
	if b == nil {
		return nil, nil
	}
	if len(b) != CompilerVersionLength {
		return nil, newError(KindInvalidVersionLength, RuleVersionLength,
			fmt.Sprintf("incorrect number of bytes for compiler version: want %d, got %d", CompilerVersionLength, len(b)))
	}
	return &CompilerVersion{Major: b[0], Minor: b[1], Patch: b[2]}, nil
}

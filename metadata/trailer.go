package metadata

import (
	"encoding/binary"
	"fmt"
)

// LengthFieldSize is the number of bytes at the very end of the bytecode
// holding the big-endian length of the CBOR trailer.
const LengthFieldSize = 2

// TrailerView is the byte range [Start, End) of the CBOR trailer within a
// bytecode buffer, together with the declared trailer length.
//
// End-Start always equals Length and End never exceeds the buffer length.
type TrailerView struct {
	Start  int
	End    int
	Length int
}

// Bytes returns the trailer slice of code. code must be the buffer the view
// was located in.
func (v TrailerView) Bytes(code []byte) []byte {
	return code[v.Start:v.End]
}

// Locate finds the CBOR trailer at the end of code using the trailing
// 2-byte length field.
//
// Locate is total: every input yields either a view or a structured error,
// never an out-of-range read.
func Locate(code []byte) (TrailerView, error) {
	if len(code) < LengthFieldSize {
		return TrailerView{}, newError(KindInsufficientData, RuleInsufficientData,
			fmt.Sprintf("insufficient data: need at least %d bytes, have %d", LengthFieldSize, len(code)))
	}
	n := int(binary.BigEndian.Uint16(code[len(code)-LengthFieldSize:]))

	// n is at most 65535, so n+LengthFieldSize cannot overflow an int; the
	// comparison runs before any subtraction that could go negative.
	if n+LengthFieldSize > len(code) {
		return TrailerView{}, newError(KindTrailerOverrun, RuleTrailerOverrun,
			fmt.Sprintf("declared trailer length %d exceeds available %d bytes", n, len(code)-LengthFieldSize))
	}
	end := len(code) - LengthFieldSize
	return TrailerView{Start: end - n, End: end, Length: n}, nil
}

// Split separates code into the executable body and the CBOR trailer. The
// length field itself belongs to neither.
func Split(code []byte) (body, trailer []byte, err error) {
	v, err := Locate(code)
	if err != nil {
		return nil, nil, err
	}
	return code[:v.Start], v.Bytes(code), nil
}

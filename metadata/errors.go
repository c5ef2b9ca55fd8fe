package metadata

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindInsufficientData: the buffer cannot even hold the trailer length field.
	KindInsufficientData Kind = "InsufficientData"
	// KindTrailerOverrun: the declared trailer length exceeds the buffer.
	KindTrailerOverrun Kind = "TrailerOverrun"
	// KindMalformed: the trailer is not a well-formed CBOR map, or a
	// recognized field has the wrong CBOR type.
	KindMalformed Kind = "MalformedStructuredData"
	// KindInvalidVersionLength: the solc field is present but not 3 bytes.
	KindInvalidVersionLength Kind = "InvalidVersionLength"
	// KindAmbiguous is only produced in strict mode.
	KindAmbiguous Kind = "Ambiguous"
	// KindUnknownField is only produced in strict mode.
	KindUnknownField Kind = "UnknownField"
)

// Stable rule identifiers.
const (
	RuleInsufficientData = "SOLCMETA-LOC-001"
	RuleTrailerOverrun   = "SOLCMETA-LOC-002"
	RuleMalformedCBOR    = "SOLCMETA-CBOR-001"
	RuleFieldType        = "SOLCMETA-CBOR-002"
	RuleVersionLength    = "SOLCMETA-VER-001"
	RuleAmbiguousDigest  = "SOLCMETA-STRICT-001"
	RuleUnknownField     = "SOLCMETA-STRICT-002"
)

var ruleKinds = map[string]Kind{
	RuleInsufficientData: KindInsufficientData,
	RuleTrailerOverrun:   KindTrailerOverrun,
	RuleMalformedCBOR:    KindMalformed,
	RuleFieldType:        KindMalformed,
	RuleVersionLength:    KindInvalidVersionLength,
	RuleAmbiguousDigest:  KindAmbiguous,
	RuleUnknownField:     KindUnknownField,
}

// Error is the package's structured error type.
//
// RuleID names the violated layout rule. Message is intended for humans;
// do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// FromRule rebuilds a structured error from a RuleID and message, e.g. after
// the error crossed a process boundary. Unknown rules yield nil.
func FromRule(ruleID, msg string) *Error {
	kind, ok := ruleKinds[ruleID]
	if !ok {
		return nil
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}

package compliance

import "fmt"

// ComplianceMode selects how aggressively the decoder rejects ambiguity.
//
// Permissive mode resolves redundant digest fields by precedence and ignores
// unrecognized trailer keys. Strict mode prefers explicit failure over both.
type ComplianceMode int

const (
	Permissive ComplianceMode = iota
	Strict
)

func (m ComplianceMode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("ComplianceMode(%d)", int(m))
	}
}

// ParseMode parses "permissive" or "strict". The empty string selects
// Permissive.
func ParseMode(s string) (ComplianceMode, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("unknown compliance mode %q (want permissive|strict)", s)
	}
}

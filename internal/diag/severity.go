package diag

// Severity ranks a diagnostic. Only SevError ever stops anything; the lexer
// and parser keep going after warnings.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// String returns the uppercase label used in rendered headers.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

package types

// StructuredResponse is the schema-conforming explanation produced for one
// scan. Summary and Disclaimer are required non-empty text; Reasons, Checks
// and Flags are required sequences (possibly empty, but never absent).
// A nil slice means the field was absent from the producer's output.
type StructuredResponse struct {
	Summary      string           `json:"summary"`
	Disclaimer   string           `json:"disclaimer"`
	Reasons      []string         `json:"reasons"`
	Checks       []string         `json:"checks"`
	Flags        []string         `json:"flags"`
	Jurisdiction string           `json:"jurisdiction,omitempty"`
	Evidence     []EvidenceMarker `json:"evidence,omitempty"`
}

// EvidenceMarker is a typed pointer to supporting material for a response,
// e.g. a product recall notice or a regulation citation.
type EvidenceMarker struct {
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// HasFlag reports whether f appears in Flags by exact string equality.
func (r *StructuredResponse) HasFlag(f string) bool {
	for _, have := range r.Flags {
		if have == f {
			return true
		}
	}
	return false
}

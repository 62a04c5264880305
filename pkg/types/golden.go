package types

import "encoding/json"

// GoldenCase is a single curated input/expectation fixture from a golden
// case file. ID is unique within a loaded file.
type GoldenCase struct {
	ID           string          `json:"id"`
	Jurisdiction string          `json:"jurisdiction,omitempty"`
	ScanData     json.RawMessage `json:"scan_data"`
	Expect       ExpectationSpec `json:"expect"`
}

// ExpectationSpec holds the optional matching criteria for one golden case.
// An absent criterion is vacuously satisfied.
type ExpectationSpec struct {
	MustChecks     []string `json:"must_checks,omitempty"`
	MustChecksAny  []string `json:"must_checks_any,omitempty"`
	MustFlags      []string `json:"must_flags,omitempty"`
	MustFlagsAny   []string `json:"must_flags_any,omitempty"`
	MustReasons    []string `json:"must_reasons,omitempty"`
	MustReasonsAny []string `json:"must_reasons_any,omitempty"`
	MustEvidence   string   `json:"must_evidence,omitempty"`
}

// Empty reports whether the spec carries no criteria at all.
func (e ExpectationSpec) Empty() bool {
	return len(e.MustChecks) == 0 && len(e.MustChecksAny) == 0 &&
		len(e.MustFlags) == 0 && len(e.MustFlagsAny) == 0 &&
		len(e.MustReasons) == 0 && len(e.MustReasonsAny) == 0 &&
		e.MustEvidence == ""
}

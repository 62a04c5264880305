// Package validate evaluates a structured scan explanation against a golden
// case's expectation spec. Criteria are evaluated independently and never
// short-circuited: one run surfaces every unmet criterion at once.
package validate

import (
	"fmt"
	"strings"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

const missingFieldPrefix = "missing field: "

// Validate returns the ordered list of failure reasons for resp against
// expect. An empty list means the case passes. Check/reason criteria use
// case-insensitive substring matching; flag criteria use exact equality;
// evidence matches on the marker's type attribute.
func Validate(resp *types.StructuredResponse, expect types.ExpectationSpec) []string {
	var reasons []string

	// Structural fields first. Nil slices mean the producer omitted the
	// field entirely, which is distinct from an empty sequence.
	if resp.Summary == "" {
		reasons = append(reasons, missingFieldPrefix+"summary")
	}
	if resp.Disclaimer == "" {
		reasons = append(reasons, missingFieldPrefix+"disclaimer")
	}
	if resp.Reasons == nil {
		reasons = append(reasons, missingFieldPrefix+"reasons")
	}
	if resp.Checks == nil {
		reasons = append(reasons, missingFieldPrefix+"checks")
	}
	if resp.Flags == nil {
		reasons = append(reasons, missingFieldPrefix+"flags")
	}

	for _, want := range expect.MustChecks {
		if !anyContainsFold(resp.Checks, want) {
			reasons = append(reasons, "missing check: "+want)
		}
	}
	if len(expect.MustChecksAny) > 0 && !anyMatchesAnyFold(resp.Checks, expect.MustChecksAny) {
		reasons = append(reasons, "missing any of checks: "+bracketed(expect.MustChecksAny))
	}

	for _, want := range expect.MustFlags {
		if !resp.HasFlag(want) {
			reasons = append(reasons, "missing flag: "+want)
		}
	}
	if len(expect.MustFlagsAny) > 0 {
		found := false
		for _, want := range expect.MustFlagsAny {
			if resp.HasFlag(want) {
				found = true
				break
			}
		}
		if !found {
			reasons = append(reasons, "missing any of flags: "+bracketed(expect.MustFlagsAny))
		}
	}

	for _, want := range expect.MustReasons {
		if !anyContainsFold(resp.Reasons, want) {
			reasons = append(reasons, "missing reason: "+want)
		}
	}
	if len(expect.MustReasonsAny) > 0 && !anyMatchesAnyFold(resp.Reasons, expect.MustReasonsAny) {
		reasons = append(reasons, "missing any of reasons: "+bracketed(expect.MustReasonsAny))
	}

	if expect.MustEvidence != "" {
		found := false
		for _, m := range resp.Evidence {
			if m.Type == expect.MustEvidence {
				found = true
				break
			}
		}
		if !found {
			reasons = append(reasons, "missing evidence: "+expect.MustEvidence)
		}
	}

	return reasons
}

// Classify maps a reason list to a failure class: no reasons is a pass,
// reasons consisting only of structural-field failures are schema failures,
// anything else is a content mismatch. Infra classification happens in the
// orchestrator, before validation is reached.
func Classify(reasons []string) string {
	if len(reasons) == 0 {
		return types.ClassNone
	}
	for _, r := range reasons {
		if !strings.HasPrefix(r, missingFieldPrefix) {
			return types.ClassContent
		}
	}
	return types.ClassSchema
}

// anyContainsFold reports whether any entry contains want, case-insensitively.
func anyContainsFold(entries []string, want string) bool {
	lower := strings.ToLower(want)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), lower) {
			return true
		}
	}
	return false
}

// anyMatchesAnyFold reports whether at least one of wants matches at least
// one entry.
func anyMatchesAnyFold(entries, wants []string) bool {
	for _, w := range wants {
		if anyContainsFold(entries, w) {
			return true
		}
	}
	return false
}

func bracketed(list []string) string {
	return fmt.Sprintf("[%s]", strings.Join(list, ", "))
}

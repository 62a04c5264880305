package producer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

const (
	cannedDisclaimer = "This is an automated safety explanation, not medical advice."
	cannedBaseCheck  = "Scanned ingredient list against the allergen and additive registry."
)

// cannedRule maps a payload keyword to the canned response fragments it
// contributes. Keywords match case-insensitively against the raw payload.
type cannedRule struct {
	keyword  string
	flag     string
	check    string
	reason   string
	evidence *types.EvidenceMarker
}

// CannedProducer is a pure function from scan payload to a fixed structured
// response: identical input yields byte-identical output on every invocation
// and across process runs. The ruleset is built once in the constructor and
// owned by the instance; there is no package-level state.
type CannedProducer struct {
	rules []cannedRule
}

// NewCannedProducer creates the deterministic producer with the built-in
// food-safety ruleset.
func NewCannedProducer() *CannedProducer {
	return &CannedProducer{rules: []cannedRule{
		{
			keyword: "peanut",
			flag:    "contains_peanuts",
			check:   "Cross-checked allergen registry for peanut derivatives.",
			reason:  "Peanut ingredients can trigger severe allergic reactions.",
			evidence: &types.EvidenceMarker{
				Type: "regulation", Source: "FALCPA", Detail: "Major allergen labeling requirement.",
			},
		},
		{
			keyword: "brie",
			flag:    "soft_cheese",
			check:   "Checked cheese style against unpasteurized soft cheese advisories.",
			reason:  "Unpasteurized soft cheese can carry listeria.",
			evidence: &types.EvidenceMarker{
				Type: "regulation", Source: "EC 2073/2005", Detail: "Listeria monocytogenes criteria for ready-to-eat food.",
			},
		},
		{
			keyword: "camembert",
			flag:    "soft_cheese",
			check:   "Checked cheese style against unpasteurized soft cheese advisories.",
			reason:  "Unpasteurized soft cheese can carry listeria.",
		},
		{
			keyword: "soft cheese",
			flag:    "soft_cheese",
			check:   "Checked cheese style against unpasteurized soft cheese advisories.",
			reason:  "Unpasteurized soft cheese can carry listeria.",
		},
		{
			keyword: "raw milk",
			flag:    "unpasteurized",
			check:   "Checked pasteurization status.",
			reason:  "Raw milk products carry elevated pathogen risk.",
		},
		{
			keyword: "romaine",
			flag:    "possible_recall",
			check:   "Checked product category against open recall notices.",
			reason:  "Romaine lettuce has recurring E. coli recall history.",
			evidence: &types.EvidenceMarker{
				Type: "recall", Source: "FDA", Detail: "Romaine lettuce E. coli O157:H7 advisories.",
			},
		},
		{
			keyword: "sodium",
			flag:    "high_sodium",
			check:   "Compared sodium content against recommended daily intake.",
			reason:  "Sodium content exceeds the recommended single-serving share.",
		},
		{
			keyword: "wheat",
			flag:    "contains_gluten",
			check:   "Cross-checked allergen registry for gluten sources.",
			reason:  "Wheat-derived ingredients contain gluten.",
		},
	}}
}

func (p *CannedProducer) Name() string          { return "canned" }
func (p *CannedProducer) ThresholdMode() string { return types.ModeStrict }

// Produce derives the canned response from the payload. Rules fire in
// ruleset order; a flag contributed by several rules appears once.
func (p *CannedProducer) Produce(_ context.Context, scanData json.RawMessage, jurisdiction string) Outcome {
	payload := strings.ToLower(string(scanData))

	resp := &types.StructuredResponse{
		Disclaimer:   cannedDisclaimer,
		Reasons:      []string{},
		Checks:       []string{cannedBaseCheck},
		Flags:        []string{},
		Jurisdiction: jurisdiction,
	}

	seenFlags := make(map[string]bool)
	seenChecks := map[string]bool{cannedBaseCheck: true}
	for _, r := range p.rules {
		if !strings.Contains(payload, r.keyword) {
			continue
		}
		if !seenFlags[r.flag] {
			seenFlags[r.flag] = true
			resp.Flags = append(resp.Flags, r.flag)
			resp.Reasons = append(resp.Reasons, r.reason)
			if r.evidence != nil {
				resp.Evidence = append(resp.Evidence, *r.evidence)
			}
		}
		if !seenChecks[r.check] {
			seenChecks[r.check] = true
			resp.Checks = append(resp.Checks, r.check)
		}
	}

	if len(resp.Flags) == 0 {
		resp.Summary = "No safety concerns identified for this product."
	} else {
		resp.Summary = "Review advised: " + strings.Join(resp.Flags, ", ") + "."
	}

	return Outcome{Response: resp}
}

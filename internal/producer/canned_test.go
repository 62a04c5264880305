package producer_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/labelwise-ai/labelwise/harness/internal/producer"
	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

func produce(t *testing.T, payload string) *types.StructuredResponse {
	t.Helper()
	p := producer.NewCannedProducer()
	out := p.Produce(context.Background(), json.RawMessage(payload), "EU")
	if !out.OK() {
		t.Fatalf("canned producer returned infra error: %v", out.Err)
	}
	return out.Response
}

func TestCannedProducer_ByteIdenticalAcrossInstances(t *testing.T) {
	payload := json.RawMessage(`{"product": "brie with peanut crumble", "sodium_mg": 900}`)

	marshal := func() []byte {
		p := producer.NewCannedProducer()
		out := p.Produce(context.Background(), payload, "EU")
		raw, err := json.Marshal(out.Response)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return raw
	}

	first, second := marshal(), marshal()
	if string(first) != string(second) {
		t.Fatalf("canned output diverged:\n%s\n%s", first, second)
	}
}

func TestCannedProducer_RulesFire(t *testing.T) {
	resp := produce(t, `{"product": "brie", "ingredients": ["peanut oil"]}`)

	wantFlags := []string{"contains_peanuts", "soft_cheese"}
	if diff := cmp.Diff(wantFlags, resp.Flags); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	if len(resp.Reasons) != 2 {
		t.Errorf("reasons: got %v", resp.Reasons)
	}
	if resp.Summary != "Review advised: contains_peanuts, soft_cheese." {
		t.Errorf("summary: got %q", resp.Summary)
	}
	if resp.Jurisdiction != "EU" {
		t.Errorf("jurisdiction: got %q", resp.Jurisdiction)
	}
}

func TestCannedProducer_EvidenceTypes(t *testing.T) {
	resp := produce(t, `{"product": "romaine salad with peanut dressing"}`)

	var evTypes []string
	for _, m := range resp.Evidence {
		evTypes = append(evTypes, m.Type)
	}
	want := []string{"regulation", "recall"}
	if diff := cmp.Diff(want, evTypes); diff != "" {
		t.Errorf("evidence types mismatch (-want +got):\n%s", diff)
	}
}

func TestCannedProducer_NoMatchIsClean(t *testing.T) {
	resp := produce(t, `{"product": "still water"}`)

	if len(resp.Flags) != 0 {
		t.Errorf("flags: got %v, want none", resp.Flags)
	}
	if resp.Summary != "No safety concerns identified for this product." {
		t.Errorf("summary: got %q", resp.Summary)
	}
	// Sequences must be present even when empty.
	if resp.Reasons == nil || resp.Checks == nil || resp.Flags == nil {
		t.Error("sequence fields must never be nil")
	}
	if resp.Disclaimer == "" {
		t.Error("disclaimer must always be set")
	}
}

func TestCannedProducer_DedupesFlagAcrossRules(t *testing.T) {
	resp := produce(t, `{"product": "brie, a soft cheese from camembert country"}`)

	count := 0
	for _, f := range resp.Flags {
		if f == "soft_cheese" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("soft_cheese appears %d times, want 1", count)
	}
}

func TestCannedProducer_Mode(t *testing.T) {
	p := producer.NewCannedProducer()
	if p.ThresholdMode() != types.ModeStrict {
		t.Errorf("mode: got %q, want strict", p.ThresholdMode())
	}
}

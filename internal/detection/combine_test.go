package detection

import (
	"testing"

	"github.com/ironsheep/inventory-scan-mcp/internal/catalog"
)

func TestCombineEmptyOCR(t *testing.T) {
	cv := []Result{
		{Kind: catalog.KindItem, ID: "clover", Name: "Clover", Confidence: 0.5, Method: MethodIconSimilarity},
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.9, Method: MethodIconSimilarity},
	}

	out := Combine(nil, cv)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	// Sorted by confidence descending.
	if out[0].ID != "sword" || out[1].ID != "clover" {
		t.Errorf("got order [%s %s], want [sword clover]", out[0].ID, out[1].ID)
	}
}

func TestCombineEmptyCV(t *testing.T) {
	ocr := []Result{
		{Kind: catalog.KindItem, ID: "clover", Name: "Clover", Confidence: 0.4, Method: MethodOCR},
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.8, Method: MethodOCR},
	}

	out := Combine(ocr, nil)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if out[0].ID != "sword" || out[1].ID != "clover" {
		t.Errorf("got order [%s %s], want [sword clover]", out[0].ID, out[1].ID)
	}
	if out[0].Method != MethodOCR {
		t.Errorf("got method %q, want %q", out[0].Method, MethodOCR)
	}
}

func TestCombineBoostsAgreement(t *testing.T) {
	ocr := []Result{
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.7, Method: MethodOCR},
	}
	cv := []Result{
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.8, Method: MethodIconSimilarity},
	}

	out := Combine(ocr, cv)
	if len(out) != 1 {
		t.Fatalf("got %d results, want exactly 1", len(out))
	}
	r := out[0]
	if r.Method != MethodHybrid {
		t.Errorf("got method %q, want %q", r.Method, MethodHybrid)
	}
	if r.Confidence <= 0.7 || r.Confidence > 0.98 {
		t.Errorf("got confidence %.3f, want in (0.7, 0.98]", r.Confidence)
	}
	if want := 0.85; !closeTo(r.Confidence, want) {
		t.Errorf("got confidence %.3f, want %.3f", r.Confidence, want)
	}
}

func TestCombineBoostCap(t *testing.T) {
	ocr := []Result{
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.95, Method: MethodOCR},
	}
	cv := []Result{
		{Kind: catalog.KindWeapon, ID: "sword", Name: "Sword", Confidence: 0.99, Method: MethodIconSimilarity},
	}

	out := Combine(ocr, cv)
	if out[0].Confidence != 0.98 {
		t.Errorf("got confidence %.3f, want capped at 0.98", out[0].Confidence)
	}
}

func TestCombineKeepsRepeatedCVDetectionsSeparate(t *testing.T) {
	// Two cells holding the same item are one pipeline repeating itself,
	// not two pipelines agreeing: no boost, no hybrid, nothing merged.
	cv := []Result{
		{Kind: catalog.KindItem, ID: "anvil", Name: "Anvil", Confidence: 0.8, Method: MethodIconSimilarity, Count: 1},
		{Kind: catalog.KindItem, ID: "anvil", Name: "Anvil", Confidence: 0.8, Method: MethodIconSimilarity, Count: 1},
	}

	out := Combine(nil, cv)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	for _, r := range out {
		if r.Method != MethodIconSimilarity {
			t.Errorf("got method %q, want %q", r.Method, MethodIconSimilarity)
		}
		if r.Confidence != 0.8 {
			t.Errorf("got confidence %.3f, want 0.8 unboosted", r.Confidence)
		}
	}

	// Downstream aggregation still sees both cells and sums the stacks.
	total := AggregateDuplicates(out)
	if len(total) != 1 {
		t.Fatalf("got %d aggregated results, want 1", len(total))
	}
	if total[0].Count != 2 {
		t.Errorf("got count %d, want 2", total[0].Count)
	}
}

func TestCombineDefaultsMethod(t *testing.T) {
	out := Combine(nil, []Result{
		{Kind: catalog.KindItem, ID: "anvil", Name: "Anvil", Confidence: 0.6},
	})
	if out[0].Method != MethodTemplateMatch {
		t.Errorf("got method %q, want %q", out[0].Method, MethodTemplateMatch)
	}
}

func TestCombineKeyIncludesKind(t *testing.T) {
	// Same ID under different kinds must stay two records.
	ocr := []Result{
		{Kind: catalog.KindWeapon, ID: "echo", Name: "Echo", Confidence: 0.7, Method: MethodOCR},
	}
	cv := []Result{
		{Kind: catalog.KindTome, ID: "echo", Name: "Echo", Confidence: 0.6, Method: MethodIconSimilarity},
	}

	out := Combine(ocr, cv)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	for _, r := range out {
		if r.Method == MethodHybrid {
			t.Errorf("kind-distinct results fused into hybrid: %+v", r)
		}
	}
}

func TestCombineStableOnTies(t *testing.T) {
	cv := []Result{
		{Kind: catalog.KindItem, ID: "a", Name: "A", Confidence: 0.5},
		{Kind: catalog.KindItem, ID: "b", Name: "B", Confidence: 0.5},
		{Kind: catalog.KindItem, ID: "c", Name: "C", Confidence: 0.5},
	}

	for trial := 0; trial < 5; trial++ {
		out := Combine(nil, cv)
		for i, want := range []string{"a", "b", "c"} {
			if out[i].ID != want {
				t.Fatalf("trial %d position %d: got %q, want %q", trial, i, out[i].ID, want)
			}
		}
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

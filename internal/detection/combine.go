package detection

import "sort"

// Confidence fusion constants: agreement between two independent
// pipelines raises confidence by combineBoost, capped at combineMax.
const (
	combineBoost = 0.15
	combineMax   = 0.98
)

// Combine fuses OCR-derived and CV-derived detections of the same scan.
//
// OCR results are inserted first, keyed by (kind, ID). A CV result whose
// key matches an OCR entry boosts that record's confidence to
// min(0.98, existing+0.15) and marks it "hybrid" — two independent
// pipelines agreeing on an entity is stronger evidence than either
// alone. Only the OCR phase populates the fusion index: CV results for
// unmatched keys are appended as-is, repeats included, so duplicates
// within one pipeline never masquerade as cross-pipeline agreement.
// Callers that want per-entity totals aggregate each list first and the
// output after. A result with no method defaults to "template_match".
//
// The output is sorted descending by confidence; ties keep insertion
// order so repeated runs over identical input produce identical output.
func Combine(ocr, cv []Result) []Result {
	merged := make([]Result, 0, len(ocr)+len(cv))
	index := make(map[key]int, len(ocr))

	for _, r := range ocr {
		if r.Method == "" {
			r.Method = MethodTemplateMatch
		}
		if i, ok := index[r.key()]; ok {
			// Duplicate within the OCR list itself: keep the stronger.
			if r.Confidence > merged[i].Confidence {
				merged[i].Confidence = r.Confidence
			}
			continue
		}
		index[r.key()] = len(merged)
		merged = append(merged, r)
	}

	for _, r := range cv {
		if r.Method == "" {
			r.Method = MethodTemplateMatch
		}
		i, ok := index[r.key()]
		if !ok {
			merged = append(merged, r)
			continue
		}

		boosted := merged[i].Confidence + combineBoost
		if boosted > combineMax {
			boosted = combineMax
		}
		merged[i].Confidence = boosted
		merged[i].Method = MethodHybrid
		if merged[i].Count == 0 {
			merged[i].Count = r.Count
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

package detection

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameCollator orders entity display names for stable, locale-aware
// output. Built once; collators are safe for concurrent readers as long
// as nothing mutates them, which nothing does.
var nameCollator = collate.New(language.English, collate.Loose)

// AggregateDuplicates merges repeated detections of the same entity into
// one record each.
//
// Results are grouped by (kind, ID), the same key Combine fuses on. Per
// group the counts are summed (a missing count contributes 1), the
// confidence is the group maximum, and every other field keeps its
// first-seen value. The output holds one record per entity, sorted
// ascending by display name.
//
// Grouping totals are invariant under permutation of the input; only the
// first-seen fields depend on input order. Empty input returns an empty
// slice.
func AggregateDuplicates(results []Result) []Result {
	type group struct {
		result  Result
		arrival int
	}

	groups := make(map[key]*group)
	order := make([]key, 0, len(results))

	for i, r := range results {
		g, ok := groups[r.key()]
		if !ok {
			merged := r
			if merged.Count < 1 {
				merged.Count = 1
			}
			groups[r.key()] = &group{result: merged, arrival: i}
			order = append(order, r.key())
			continue
		}

		count := r.Count
		if count < 1 {
			count = 1
		}
		g.result.Count += count
		if r.Confidence > g.result.Confidence {
			g.result.Confidence = r.Confidence
		}
	}

	out := make([]Result, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k].result)
	}

	// Arrival order is already first-seen; the stable sort keeps it as
	// the tiebreak for identical names.
	sort.SliceStable(out, func(i, j int) bool {
		return nameCollator.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

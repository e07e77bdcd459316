package classifier

import (
	"sort"
	"strings"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// designation is a raw classification before dedup and formatting
type designation struct {
	transform Transform
	interval  string
	direction string
}

var intervalOrder = map[string]int{
	St.Quartered: 0,
	St.Halved:    1,
}

// buildDesignations dedups raw designations by their components,
// intervals and rotation direction, quartered first then halved,
// each by priority. The first designation of each key wins.
func buildDesignations(ds []designation) []St.CandidateDesignation {
	sorted := make([]designation, len(ds))
	copy(sorted, ds)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := intervalOrder[sorted[i].interval], intervalOrder[sorted[j].interval]
		if oi != oj {
			return oi < oj
		}
		return Priority(sorted[i].transform) < Priority(sorted[j].transform)
	})

	out := make([]St.CandidateDesignation, 0, len(sorted))
	seen := make(map[string]bool)
	for _, d := range sorted {
		c := St.CandidateDesignation{
			Components:        d.transform.Components(),
			Intervals:         d.transform.Intervals(d.interval),
			RotationDirection: d.direction,
			Label:             d.transform.Label(),
			Description:       d.transform.Description(d.direction),
		}
		key := designationKey(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func designationKey(c St.CandidateDesignation) string {
	keys := make([]string, 0, len(c.Intervals))
	for k, v := range c.Intervals {
		keys = append(keys, k+"="+v)
	}
	sort.Strings(keys)
	return strings.Join(c.Components, ",") + "|" + strings.Join(keys, ",") + "|" + c.RotationDirection
}

func modularDesignation() St.CandidateDesignation {
	return St.CandidateDesignation{
		Components:  []string{CompModular},
		Intervals:   map[string]string{},
		Label:       CompModular,
		Description: "Modular",
	}
}

package batch

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// Unclassified is the report group for sequences without a loop type
const Unclassified = "none"

// Report summarizes one run, grouped by loop type
type Report struct {
	RunID      string
	Mode       string
	Total      int
	Circular   int
	Classified int
	ByLoopType map[string][]string // loop type → sequence IDs, sorted
	Results    []St.ClassificationResult
	Elapsed    time.Duration
}

func NewReport(runID, mode string, results []St.ClassificationResult) *Report {
	rep := &Report{
		RunID:      runID,
		Mode:       mode,
		Total:      len(results),
		ByLoopType: make(map[string][]string),
		Results:    results,
	}
	for _, r := range results {
		if r.IsCircular {
			rep.Circular++
		}
		group := r.LoopType
		if group == "" {
			group = Unclassified
		} else {
			rep.Classified++
		}
		rep.ByLoopType[group] = append(rep.ByLoopType[group], r.SequenceID)
	}
	for _, ids := range rep.ByLoopType {
		sort.Strings(ids)
	}
	return rep
}

// LoopTypes lists the groups, largest first then by name
func (rep *Report) LoopTypes() []string {
	types := make([]string, 0, len(rep.ByLoopType))
	for lt := range rep.ByLoopType {
		types = append(types, lt)
	}
	sort.Slice(types, func(i, j int) bool {
		ni, nj := len(rep.ByLoopType[types[i]]), len(rep.ByLoopType[types[j]])
		if ni != nj {
			return ni > nj
		}
		return types[i] < types[j]
	})
	return types
}

// Print writes a plain text table of the run
func (rep *Report) Print(w io.Writer) error {
	fmt.Fprintf(w, "Run %s (%s): %d sequences, %d circular, %d classified in %s\n",
		rep.RunID, rep.Mode, rep.Total, rep.Circular, rep.Classified, rep.Elapsed.Round(time.Millisecond))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LOOP TYPE\tCOUNT\tSEQUENCES")
	for _, lt := range rep.LoopTypes() {
		ids := rep.ByLoopType[lt]
		fmt.Fprintf(tw, "%s\t%d\t%s\n", lt, len(ids), strings.Join(ids, ", "))
	}
	return tw.Flush()
}

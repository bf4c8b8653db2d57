package director

import (
	"fmt"

	"github.com/ivlev/telop/internal/telop"
)

// Issue is a problem found in a caption set. Overlaps are reported but are
// not fatal: lookups resolve them by sequence order.
type Issue struct {
	Index int
	Kind  string // "negative_start", "empty_duration", "out_of_order", "overlap"
	Msg   string
}

func (i Issue) String() string {
	return fmt.Sprintf("telop %d: %s", i.Index+1, i.Msg)
}

func Validate(set telop.Set) []Issue {
	var issues []Issue
	for i, e := range set {
		if e.Start < 0 {
			issues = append(issues, Issue{i, "negative_start", fmt.Sprintf("start %.3f is negative", e.Start)})
		}
		if e.Duration <= 0 {
			issues = append(issues, Issue{i, "empty_duration", fmt.Sprintf("duration %.3f never shows", e.Duration)})
		}
		if i == 0 {
			continue
		}
		prev := set[i-1]
		if e.Start < prev.Start {
			issues = append(issues, Issue{i, "out_of_order", fmt.Sprintf("starts at %.3f before previous start %.3f", e.Start, prev.Start)})
		}
		for j := 0; j < i; j++ {
			if overlaps(set[j], e) {
				issues = append(issues, Issue{i, "overlap", fmt.Sprintf("overlaps telop %d, which wins", j+1)})
				break
			}
		}
	}
	return issues
}

func overlaps(a, b telop.Entry) bool {
	return a.Duration > 0 && b.Duration > 0 && a.Start < b.End() && b.Start < a.End()
}

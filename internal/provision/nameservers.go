package provision

import (
	"sort"
	"strings"
)

// NormalizeNameservers trims entries, drops empties and duplicates, and
// sorts the result. It returns nil when nothing is left.
func NormalizeNameservers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, ns := range in {
		ns = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(ns), "."))
		if ns == "" {
			continue
		}
		if _, dup := seen[ns]; dup {
			continue
		}
		seen[ns] = struct{}{}
		out = append(out, ns)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

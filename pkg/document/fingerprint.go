package document

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the key set. Order and duplicates do not affect the
// result, so callers can compare it to decide whether a cached schema needs a
// rebuild.
func Fingerprint(keys []string) string {
	set := uniqueSorted(keys)
	sum := xxhash.Sum64String(strings.Join(set, "\n"))
	return strconv.FormatUint(sum, 16)
}

// Diff reports the keys added to and removed from previous.
func Diff(previous, current []string) (added, removed []string) {
	before := make(map[string]struct{}, len(previous))
	for _, key := range previous {
		before[key] = struct{}{}
	}
	after := make(map[string]struct{}, len(current))
	for _, key := range current {
		after[key] = struct{}{}
	}
	for _, key := range uniqueSorted(current) {
		if _, ok := before[key]; !ok {
			added = append(added, key)
		}
	}
	for _, key := range uniqueSorted(previous) {
		if _, ok := after[key]; !ok {
			removed = append(removed, key)
		}
	}
	return added, removed
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

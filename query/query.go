// Package query filters and orders the objects of a parsed bucket listing.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/yourusername/bucket-browser/types"
)

// epoch is the sort key for entries without a usable timestamp
var epoch = time.Unix(0, 0).UTC()

// Query returns the objects of listing whose key contains searchText
// (case-insensitive, surrounding whitespace ignored), stably sorted by
// last-modified time in the given direction. The listing is never modified
// and the result is always a new slice.
func Query(listing *types.BucketListing, searchText string, dir types.SortDirection) []types.ObjectEntry {
	if listing == nil {
		return []types.ObjectEntry{}
	}

	needle := strings.ToLower(strings.TrimSpace(searchText))

	type keyed struct {
		entry types.ObjectEntry
		ms    int64
	}
	matched := make([]keyed, 0, len(listing.Objects))
	for _, obj := range listing.Objects {
		if needle != "" && !strings.Contains(strings.ToLower(obj.Key), needle) {
			continue
		}
		matched = append(matched, keyed{entry: obj, ms: Timestamp(obj.LastModified).UnixMilli()})
	}

	slices.SortStableFunc(matched, func(a, b keyed) int {
		if dir == types.Descending {
			return cmp.Compare(b.ms, a.ms)
		}
		return cmp.Compare(a.ms, b.ms)
	})

	result := make([]types.ObjectEntry, len(matched))
	for i, m := range matched {
		result[i] = m.entry
	}
	return result
}

// Timestamp parses a last-modified value leniently. Values without a zone are
// read as UTC. Empty or unparseable input yields the Unix epoch, as do
// fragments such as "12:" that only parse to a date before year 1.
func Timestamp(lastModified string) time.Time {
	s := strings.TrimSpace(lastModified)
	if s == "" {
		return epoch
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() < 1 {
		return epoch
	}
	return t
}

// ParseSortDirection maps user input such as "asc" or "Descending" to a SortDirection
func ParseSortDirection(s string) (types.SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending", "oldest":
		return types.Ascending, nil
	case "desc", "descending", "newest", "":
		return types.Descending, nil
	default:
		return types.Descending, fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
	}
}

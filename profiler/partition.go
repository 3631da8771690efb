package profiler

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yourusername/bucket-browser/types"
)

// maxExamples bounds the sample keys kept per partition
const maxExamples = 3

// datePattern is a key layout that encodes a date
type datePattern struct {
	name  string
	regex *regexp.Regexp
}

// Ordered from most to least specific so the first pattern that covers the
// majority of keys wins
var datePatterns = []datePattern{
	{"year=YYYY/month=MM/day=DD", regexp.MustCompile(`year=(\d{4})/month=(\d{2})/day=(\d{2})`)},
	{"year=YYYY/month=MM", regexp.MustCompile(`year=(\d{4})/month=(\d{2})`)},
	{"dt=YYYY-MM-DD", regexp.MustCompile(`dt=(\d{4})-(\d{2})-(\d{2})`)},
	{"YYYY/MM/DD", regexp.MustCompile(`(\d{4})/(\d{2})/(\d{2})`)},
	{"YYYY/MM", regexp.MustCompile(`(\d{4})/(\d{2})`)},
	{"YYYY-MM-DD", regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)},
}

// PartitionAnalyzer handles partition detection in object keys
type PartitionAnalyzer struct{}

// NewPartitionAnalyzer creates a new partition analyzer
func NewPartitionAnalyzer() *PartitionAnalyzer {
	return &PartitionAnalyzer{}
}

// AnalyzePartitions detects date-based partitions, falling back to top-level prefixes
func (pa *PartitionAnalyzer) AnalyzePartitions(objects []types.ObjectEntry) []types.Partition {
	if len(objects) == 0 {
		return nil
	}

	if partitions := pa.detectDatePartitions(objects); len(partitions) > 0 {
		return partitions
	}
	return pa.detectHierarchicalPartitions(objects)
}

// detectDatePartitions returns the groups of the first pattern matching more than half the keys
func (pa *PartitionAnalyzer) detectDatePartitions(objects []types.ObjectEntry) []types.Partition {
	for _, pattern := range datePatterns {
		groups := newPartitionSet(pattern.name)
		matched := 0
		for _, obj := range objects {
			if m := pattern.regex.FindString(obj.Key); m != "" {
				groups.add(m, obj)
				matched++
			}
		}

		if matched > 0 && float64(matched)/float64(len(objects)) > 0.5 {
			partitions := groups.list()
			sort.Slice(partitions, func(i, j int) bool {
				return partitions[i].Prefix < partitions[j].Prefix
			})
			return partitions
		}
	}

	return nil
}

// detectHierarchicalPartitions groups keys by their first path segment.
// A single top-level prefix is not a meaningful partitioning.
func (pa *PartitionAnalyzer) detectHierarchicalPartitions(objects []types.ObjectEntry) []types.Partition {
	groups := newPartitionSet("hierarchical (top-level prefix)")

	for _, obj := range objects {
		if top, _, found := strings.Cut(obj.Key, "/"); found {
			groups.add(top+"/", obj)
		}
	}

	if len(groups.byPrefix) <= 1 {
		return nil
	}

	partitions := groups.list()
	sort.Slice(partitions, func(i, j int) bool {
		if partitions[i].ObjectCount != partitions[j].ObjectCount {
			return partitions[i].ObjectCount > partitions[j].ObjectCount
		}
		return partitions[i].Prefix < partitions[j].Prefix
	})
	return partitions
}

// partitionSet accumulates objects per prefix for one pattern
type partitionSet struct {
	pattern  string
	byPrefix map[string]*types.Partition
}

func newPartitionSet(pattern string) *partitionSet {
	return &partitionSet{pattern: pattern, byPrefix: make(map[string]*types.Partition)}
}

func (s *partitionSet) add(prefix string, obj types.ObjectEntry) {
	p, ok := s.byPrefix[prefix]
	if !ok {
		p = &types.Partition{Prefix: prefix, Pattern: s.pattern}
		s.byPrefix[prefix] = p
	}
	p.ObjectCount++
	p.TotalSize += obj.SizeBytes
	if len(p.Examples) < maxExamples {
		p.Examples = append(p.Examples, obj.Key)
	}
}

func (s *partitionSet) list() []types.Partition {
	out := make([]types.Partition, 0, len(s.byPrefix))
	for _, p := range s.byPrefix {
		out = append(out, *p)
	}
	return out
}

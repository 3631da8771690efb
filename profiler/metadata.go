package profiler

import (
	"strings"

	"github.com/yourusername/bucket-browser/query"
	"github.com/yourusername/bucket-browser/types"
)

// MetadataAnalyzer handles metadata analysis and aggregation
type MetadataAnalyzer struct{}

// NewMetadataAnalyzer creates a new metadata analyzer
func NewMetadataAnalyzer() *MetadataAnalyzer {
	return &MetadataAnalyzer{}
}

// AnalyzeMetadata aggregates file types, sizes and modification dates.
// Entries whose LastModified does not parse are left out of the date range.
func (ma *MetadataAnalyzer) AnalyzeMetadata(objects []types.ObjectEntry) *types.MetadataSummary {
	summary := &types.MetadataSummary{
		Objects:       objects,
		FileTypeStats: make(map[string]int64),
	}

	for _, obj := range objects {
		summary.FileTypeStats[ma.fileType(obj)]++

		if strings.TrimSpace(obj.LastModified) == "" {
			continue
		}
		ts := query.Timestamp(obj.LastModified)
		if ts.Unix() == 0 {
			continue
		}
		if summary.DateRange.Earliest.IsZero() || ts.Before(summary.DateRange.Earliest) {
			summary.DateRange.Earliest = ts
		}
		if summary.DateRange.Latest.IsZero() || ts.After(summary.DateRange.Latest) {
			summary.DateRange.Latest = ts
		}
	}

	// Generate size distribution histogram
	summary.SizeDistribution = ma.generateSizeDistribution(objects)

	return summary
}

// fileType groups directory placeholders separately from extension-less files
func (ma *MetadataAnalyzer) fileType(obj types.ObjectEntry) string {
	if strings.HasSuffix(obj.Key, "/") {
		return "[directory]"
	}
	return obj.Extension
}

// generateSizeDistribution creates a histogram of file sizes
func (ma *MetadataAnalyzer) generateSizeDistribution(objects []types.ObjectEntry) []types.SizeBucket {
	buckets := []types.SizeBucket{
		{Label: "0-1KB", Min: 0, Max: 1024, Count: 0},
		{Label: "1KB-1MB", Min: 1024, Max: 1024 * 1024, Count: 0},
		{Label: "1MB-100MB", Min: 1024 * 1024, Max: 100 * 1024 * 1024, Count: 0},
		{Label: "100MB-1GB", Min: 100 * 1024 * 1024, Max: 1024 * 1024 * 1024, Count: 0},
		{Label: "1GB+", Min: 1024 * 1024 * 1024, Max: -1, Count: 0},
	}

	for _, obj := range objects {
		size := obj.SizeBytes
		if size < 0 {
			size = 0
		}
		for i := range buckets {
			if buckets[i].Max == -1 {
				// Last bucket (1GB+)
				if size >= buckets[i].Min {
					buckets[i].Count++
					break
				}
			} else {
				if size >= buckets[i].Min && size < buckets[i].Max {
					buckets[i].Count++
					break
				}
			}
		}
	}

	return buckets
}

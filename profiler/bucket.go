package profiler

import (
	"github.com/yourusername/bucket-browser/output"
	"github.com/yourusername/bucket-browser/types"
)

// BucketAnalyzer handles bucket-level analysis
type BucketAnalyzer struct{}

// NewBucketAnalyzer creates a new bucket analyzer
func NewBucketAnalyzer() *BucketAnalyzer {
	return &BucketAnalyzer{}
}

// Summarize computes totals and per storage class statistics for a listing
func (ba *BucketAnalyzer) Summarize(listing *types.BucketListing) *types.BucketSummary {
	summary := &types.BucketSummary{
		Name:           listing.Name,
		Prefix:         listing.Prefix,
		IsTruncated:    listing.IsTruncated,
		TotalObjects:   int64(listing.TotalCount),
		TotalSize:      listing.TotalSizeBytes,
		StorageClasses: make(map[string]types.StorageClassStats),
	}

	for _, obj := range listing.Objects {
		storageClass := output.StorageClassOrDefault(obj.StorageClass)

		stats := summary.StorageClasses[storageClass]
		stats.Count++
		stats.Size += obj.SizeBytes
		summary.StorageClasses[storageClass] = stats
	}

	// Calculate estimated cost
	summary.EstimatedCost = ba.calculateCost(summary.StorageClasses)

	return summary
}

// calculateCost estimates monthly storage cost based on storage classes
func (ba *BucketAnalyzer) calculateCost(storageClasses map[string]types.StorageClassStats) float64 {
	// Pricing per GB per month (approximate US East)
	pricing := map[string]float64{
		"STANDARD":            0.023,
		"INTELLIGENT_TIERING": 0.023,
		"STANDARD_IA":         0.0125,
		"ONEZONE_IA":          0.01,
		"GLACIER":             0.004,
		"GLACIER_IR":          0.004,
		"DEEP_ARCHIVE":        0.00099,
	}

	totalCost := 0.0
	for class, stats := range storageClasses {
		sizeGB := float64(stats.Size) / (1024 * 1024 * 1024)
		if price, ok := pricing[class]; ok {
			totalCost += sizeGB * price
		} else {
			// Unknown classes are priced as STANDARD
			totalCost += sizeGB * pricing["STANDARD"]
		}
	}

	return totalCost
}

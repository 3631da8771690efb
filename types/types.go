package types

import "time"

// DefaultBucketName is used when a listing document carries no Name element
const DefaultBucketName = "Unknown Bucket"

// DefaultStorageClass is shown for objects whose listing entry has no storage class
const DefaultStorageClass = "STANDARD"

// NoExtension is the extension reported for keys without a dot
const NoExtension = "FILE"

// BucketListing is the parsed form of one ListBucketResult document
type BucketListing struct {
	Name           string        `json:"name"`
	Prefix         string        `json:"prefix"`
	MaxKeys        string        `json:"maxKeys"`
	IsTruncated    bool          `json:"isTruncated"`
	Objects        []ObjectEntry `json:"objects"`
	TotalCount     int           `json:"totalCount"`
	TotalSizeBytes int64         `json:"totalSizeBytes"`
}

// ObjectEntry holds the metadata of a single object in a listing
type ObjectEntry struct {
	Key               string `json:"key"`
	SizeBytes         int64  `json:"sizeBytes"`
	LastModified      string `json:"lastModified"`
	ETag              string `json:"etag"`
	StorageClass      string `json:"storageClass"`
	ChecksumAlgorithm string `json:"checksumAlgorithm"`
	Owner             *Owner `json:"owner,omitempty"`
	Extension         string `json:"extension"`
}

// Owner identifies the owner of an object. Providers may omit it entirely.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// SortDirection orders query results by last-modified time
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// BucketSummary contains summary statistics for a bucket listing
type BucketSummary struct {
	Name           string
	Prefix         string
	IsTruncated    bool
	TotalObjects   int64
	TotalSize      int64
	StorageClasses map[string]StorageClassStats
	EstimatedCost  float64
}

// StorageClassStats holds count and size for a specific storage class
type StorageClassStats struct {
	Count int64
	Size  int64
}

// MetadataSummary contains aggregated metadata statistics
type MetadataSummary struct {
	Objects          []ObjectEntry
	FileTypeStats    map[string]int64
	SizeDistribution []SizeBucket
	DateRange        DateRange
}

// SizeBucket represents a size range in the distribution histogram
type SizeBucket struct {
	Label string
	Min   int64
	Max   int64
	Count int64
}

// DateRange represents the earliest and latest modification dates.
// Both are zero when no entry carries a parseable timestamp.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

// Partition represents a detected partition pattern in object keys
type Partition struct {
	Prefix      string
	Pattern     string
	ObjectCount int64
	TotalSize   int64
	Examples    []string
}

// Report bundles everything produced by one profiling run
type Report struct {
	Listing    *BucketListing
	Summary    *BucketSummary
	Metadata   *MetadataSummary
	Partitions []Partition
	Files      []string
}

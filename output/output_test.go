package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bucket-browser/types"
)

func sampleListing() *types.BucketListing {
	return &types.BucketListing{
		Name:        "demo",
		Prefix:      "logs/",
		MaxKeys:     "1000",
		IsTruncated: true,
		Objects: []types.ObjectEntry{
			{Key: "logs/a.txt", SizeBytes: 2048, LastModified: "2024-01-01T00:00:00Z", Extension: "TXT"},
			{Key: "logs/b.gz", SizeBytes: 10, StorageClass: "GLACIER", Extension: "GZ"},
		},
		TotalCount:     2,
		TotalSizeBytes: 2058,
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "2.0 KiB", FormatBytes(2048))
	assert.Equal(t, "1.0 MiB", FormatBytes(1<<20))
	assert.Equal(t, "-10 B", FormatBytes(-10))
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "======\n  ab\n======", FormatHeader("ab"))
}

func TestStorageClassOrDefault(t *testing.T) {
	assert.Equal(t, "STANDARD", StorageClassOrDefault(""))
	assert.Equal(t, "GLACIER", StorageClassOrDefault("GLACIER"))
}

func TestRenderTable(t *testing.T) {
	l := sampleListing()

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, l, l.Objects[:1]))

	out := buf.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "logs/a.txt")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "STANDARD")
	assert.NotContains(t, out, "logs/b.gz")
	assert.Contains(t, out, "demo: 1 of 2 objects")
	assert.Contains(t, out, "listing truncated")
}

func TestWriteJSON(t *testing.T) {
	l := sampleListing()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, l, nil))

	var view ListingView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, "demo", view.Name)
	assert.Equal(t, 2, view.TotalCount)
	assert.Equal(t, 0, view.Matched)
	assert.NotNil(t, view.Objects)
}

func TestWriter_Reports(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	summary := &types.BucketSummary{
		Name:         "my/bucket",
		TotalObjects: 2,
		TotalSize:    2058,
		StorageClasses: map[string]types.StorageClassStats{
			"STANDARD": {Count: 1, Size: 2048},
			"GLACIER":  {Count: 1, Size: 10},
		},
	}
	require.NoError(t, w.WriteBucketSummary(summary))
	data, err := os.ReadFile(w.SummaryPath("my/bucket"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total objects:   2")
	assert.Contains(t, string(data), "GLACIER")
	assert.Contains(t, w.SummaryPath("my/bucket"), "my-bucket-summary.txt")

	meta := &types.MetadataSummary{
		Objects:       sampleListing().Objects,
		FileTypeStats: map[string]int64{"TXT": 1, "GZ": 1},
		SizeDistribution: []types.SizeBucket{
			{Label: "0-1KB", Count: 1},
		},
		DateRange: types.DateRange{
			Earliest: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Latest:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, w.WriteMetadataSummary("demo", meta))
	data, err = os.ReadFile(w.MetadataPath("demo"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-01 00:00:00 UTC")
	assert.Contains(t, string(data), "GZ")
	assert.Contains(t, string(data), "0-1KB")

	require.NoError(t, w.WritePartitions("demo", nil))
	data, err = os.ReadFile(w.PartitionsPath("demo"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "No partitions detected")
}

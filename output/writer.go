package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/bucket-browser/types"
)

const reportTimeLayout = "2006-01-02 15:04:05 MST"

// Writer writes profiling reports as text files into a directory
type Writer struct {
	outputDir string
}

// NewWriter creates a report writer for outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// SummaryPath returns the summary report location for a bucket
func (w *Writer) SummaryPath(bucketName string) string {
	return filepath.Join(w.outputDir, fileSafe(bucketName)+"-summary.txt")
}

// MetadataPath returns the metadata report location for a bucket
func (w *Writer) MetadataPath(bucketName string) string {
	return filepath.Join(w.outputDir, fileSafe(bucketName)+"-metadata.txt")
}

// PartitionsPath returns the partitions report location for a bucket
func (w *Writer) PartitionsPath(bucketName string) string {
	return filepath.Join(w.outputDir, fileSafe(bucketName)+"-partitions.txt")
}

// WriteBucketSummary writes totals and the storage class breakdown
func (w *Writer) WriteBucketSummary(summary *types.BucketSummary) error {
	var sb strings.Builder

	sb.WriteString(FormatHeader("Bucket Summary: " + summary.Name))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Prefix:          %s\n", OrDash(summary.Prefix))
	fmt.Fprintf(&sb, "Total objects:   %d\n", summary.TotalObjects)
	fmt.Fprintf(&sb, "Total size:      %s (%d bytes)\n", FormatBytes(summary.TotalSize), summary.TotalSize)
	fmt.Fprintf(&sb, "Estimated cost:  $%.2f / month\n", summary.EstimatedCost)
	if summary.IsTruncated {
		sb.WriteString("Note:            listing was truncated, totals cover the returned page only\n")
	}

	sb.WriteString("\nStorage classes:\n")
	classes := make([]string, 0, len(summary.StorageClasses))
	for class := range summary.StorageClasses {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		stats := summary.StorageClasses[class]
		fmt.Fprintf(&sb, "  %-22s %8d objects  %12s\n", class, stats.Count, FormatBytes(stats.Size))
	}

	return w.write(w.SummaryPath(summary.Name), sb.String())
}

// WriteMetadataSummary writes file type counts, the size histogram and the date range
func (w *Writer) WriteMetadataSummary(bucketName string, summary *types.MetadataSummary) error {
	var sb strings.Builder

	sb.WriteString(FormatHeader("Metadata: " + bucketName))
	sb.WriteString("\n\n")

	sb.WriteString("Date range:\n")
	if summary.DateRange.Earliest.IsZero() {
		sb.WriteString("  no parseable modification dates\n")
	} else {
		fmt.Fprintf(&sb, "  Earliest: %s\n", summary.DateRange.Earliest.Format(reportTimeLayout))
		fmt.Fprintf(&sb, "  Latest:   %s\n", summary.DateRange.Latest.Format(reportTimeLayout))
	}

	sb.WriteString("\nFile types:\n")
	exts := make([]string, 0, len(summary.FileTypeStats))
	for ext := range summary.FileTypeStats {
		exts = append(exts, ext)
	}
	// Most common first, ties alphabetical
	sort.Slice(exts, func(i, j int) bool {
		ci, cj := summary.FileTypeStats[exts[i]], summary.FileTypeStats[exts[j]]
		if ci != cj {
			return ci > cj
		}
		return exts[i] < exts[j]
	})
	for _, ext := range exts {
		fmt.Fprintf(&sb, "  %-12s %d\n", ext, summary.FileTypeStats[ext])
	}

	sb.WriteString("\nSize distribution:\n")
	for _, bucket := range summary.SizeDistribution {
		fmt.Fprintf(&sb, "  %-10s %d\n", bucket.Label, bucket.Count)
	}

	sb.WriteString("\nObjects:\n")
	for _, obj := range summary.Objects {
		fmt.Fprintf(&sb, "  %s\t%d\t%s\t%s\n", obj.Key, obj.SizeBytes, OrDash(obj.LastModified), StorageClassOrDefault(obj.StorageClass))
	}

	return w.write(w.MetadataPath(bucketName), sb.String())
}

// WritePartitions writes the detected partition patterns
func (w *Writer) WritePartitions(bucketName string, partitions []types.Partition) error {
	var sb strings.Builder

	sb.WriteString(FormatHeader("Partitions: " + bucketName))
	sb.WriteString("\n\n")

	if len(partitions) == 0 {
		sb.WriteString("No partitions detected\n")
	}
	for _, p := range partitions {
		fmt.Fprintf(&sb, "%s  [%s]\n", p.Prefix, p.Pattern)
		fmt.Fprintf(&sb, "  objects: %d  size: %s\n", p.ObjectCount, FormatBytes(p.TotalSize))
		for _, example := range p.Examples {
			fmt.Fprintf(&sb, "  e.g. %s\n", example)
		}
	}

	return w.write(w.PartitionsPath(bucketName), sb.String())
}

func (w *Writer) write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

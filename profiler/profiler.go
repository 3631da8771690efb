// Package profiler derives summary reports from a parsed bucket listing.
package profiler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/bucket-browser/fetch"
	"github.com/yourusername/bucket-browser/listing"
	"github.com/yourusername/bucket-browser/output"
	"github.com/yourusername/bucket-browser/types"
)

// Profiler orchestrates the profiling of one listing document
type Profiler struct {
	bucketAnalyzer    *BucketAnalyzer
	metadataAnalyzer  *MetadataAnalyzer
	partitionAnalyzer *PartitionAnalyzer
	writer            *output.Writer
}

// NewProfiler creates a new profiler writing reports into outputDir
func NewProfiler(outputDir string) *Profiler {
	return &Profiler{
		bucketAnalyzer:    NewBucketAnalyzer(),
		metadataAnalyzer:  NewMetadataAnalyzer(),
		partitionAnalyzer: NewPartitionAnalyzer(),
		writer:            output.NewWriter(outputDir),
	}
}

// Profile fetches and parses one document, analyzes it and writes the three report files
func (p *Profiler) Profile(ctx context.Context, fetcher fetch.Fetcher) (*types.Report, error) {
	logger := log.With().Str("source", fetcher.Source()).Logger()

	logger.Info().Msg("Fetching listing")
	doc, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	parsed, err := listing.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	report := p.Analyze(parsed)
	logger.Info().
		Str("bucket", parsed.Name).
		Int("objects", parsed.TotalCount).
		Str("size", output.FormatBytes(parsed.TotalSizeBytes)).
		Int("file_types", len(report.Metadata.FileTypeStats)).
		Int("partitions", len(report.Partitions)).
		Msg("Analyzed listing")
	if parsed.IsTruncated {
		logger.Warn().Msg("Listing is truncated; reports cover the returned page only")
	}

	if err := p.writer.WriteBucketSummary(report.Summary); err != nil {
		return nil, fmt.Errorf("failed to write bucket summary: %w", err)
	}
	if err := p.writer.WriteMetadataSummary(parsed.Name, report.Metadata); err != nil {
		return nil, fmt.Errorf("failed to write metadata summary: %w", err)
	}
	if err := p.writer.WritePartitions(parsed.Name, report.Partitions); err != nil {
		return nil, fmt.Errorf("failed to write partitions: %w", err)
	}

	report.Files = []string{
		p.writer.SummaryPath(parsed.Name),
		p.writer.MetadataPath(parsed.Name),
		p.writer.PartitionsPath(parsed.Name),
	}
	for _, f := range report.Files {
		logger.Info().Str("file", f).Msg("Wrote report")
	}

	return report, nil
}

// Analyze runs every analyzer over a listing without writing anything
func (p *Profiler) Analyze(parsed *types.BucketListing) *types.Report {
	return &types.Report{
		Listing:    parsed,
		Summary:    p.bucketAnalyzer.Summarize(parsed),
		Metadata:   p.metadataAnalyzer.AnalyzeMetadata(parsed.Objects),
		Partitions: p.partitionAnalyzer.AnalyzePartitions(parsed.Objects),
	}
}

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/yourusername/bucket-browser/types"
)

// ListingView is the serialized form of a listing together with a query result
type ListingView struct {
	Name           string              `json:"name"`
	Prefix         string              `json:"prefix"`
	MaxKeys        string              `json:"maxKeys"`
	IsTruncated    bool                `json:"isTruncated"`
	TotalCount     int                 `json:"totalCount"`
	TotalSizeBytes int64               `json:"totalSizeBytes"`
	Matched        int                 `json:"matched"`
	Objects        []types.ObjectEntry `json:"objects"`
}

// NewListingView pairs listing metadata with the objects selected from it
func NewListingView(listing *types.BucketListing, objects []types.ObjectEntry) ListingView {
	if objects == nil {
		objects = []types.ObjectEntry{}
	}
	return ListingView{
		Name:           listing.Name,
		Prefix:         listing.Prefix,
		MaxKeys:        listing.MaxKeys,
		IsTruncated:    listing.IsTruncated,
		TotalCount:     listing.TotalCount,
		TotalSizeBytes: listing.TotalSizeBytes,
		Matched:        len(objects),
		Objects:        objects,
	}
}

// WriteJSON writes the listing view as indented JSON
func WriteJSON(w io.Writer, listing *types.BucketListing, objects []types.ObjectEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewListingView(listing, objects))
}

// RenderTable writes a bordered table of objects followed by a totals line
func RenderTable(w io.Writer, listing *types.BucketListing, objects []types.ObjectEntry) error {
	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, []string{
			obj.Key,
			FormatBytes(obj.SizeBytes),
			OrDash(obj.LastModified),
			StorageClassOrDefault(obj.StorageClass),
			obj.Extension,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "SIZE", "LAST MODIFIED", "STORAGE CLASS", "TYPE").
		Rows(rows...)

	truncated := ""
	if listing.IsTruncated {
		truncated = " (listing truncated)"
	}

	_, err := fmt.Fprintf(w, "%s\n%s: %d of %d objects, %s total%s\n",
		t.String(),
		listing.Name,
		len(objects),
		listing.TotalCount,
		FormatBytes(listing.TotalSizeBytes),
		truncated,
	)
	return err
}

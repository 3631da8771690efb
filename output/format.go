// Package output renders listings and profiling reports for terminals and files.
package output

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yourusername/bucket-browser/types"
)

// FormatBytes renders a byte count with binary units, e.g. "2.0 KiB"
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// FormatHeader frames a title between two rules of matching width
func FormatHeader(title string) string {
	rule := strings.Repeat("=", len(title)+4)
	return rule + "\n  " + title + "\n" + rule
}

// StorageClassOrDefault returns class, or STANDARD when the listing left it empty
func StorageClassOrDefault(class string) string {
	if class == "" {
		return types.DefaultStorageClass
	}
	return class
}

// OrDash substitutes a dash for empty strings in tables
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// fileSafe turns a bucket name into something usable in a file name
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, name)
}

// Package listing turns ListBucketResult documents into BucketListing values.
package listing

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
	"github.com/yourusername/bucket-browser/types"
)

// Parse converts a bucket listing document into a BucketListing.
// It either returns a complete listing or a *ParseError, never a partial result.
func Parse(xmlText string) (*types.BucketListing, error) {
	if err := checkWellFormed(xmlText); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, malformed(fmt.Sprintf("not well-formed (line %d): %s", syntaxErr.Line, syntaxErr.Msg), err)
		}
		return nil, malformed("not well-formed: "+err.Error(), err)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, malformed("invalid document structure: "+err.Error(), err)
	}
	if doc.Root() == nil {
		return nil, malformed("no document element", nil)
	}

	// The document node is searched so the root element itself can match
	top := &doc.Element

	listing := &types.BucketListing{
		Name:        childText(top, "Name", types.DefaultBucketName),
		Prefix:      childText(top, "Prefix", ""),
		MaxKeys:     childText(top, "MaxKeys", ""),
		IsTruncated: childText(top, "IsTruncated", "") == "true",
		Objects:     []types.ObjectEntry{},
	}

	for _, contents := range descendants(top, "Contents") {
		entry, ok := parseContents(contents)
		if !ok {
			continue
		}
		listing.Objects = append(listing.Objects, entry)
		listing.TotalSizeBytes = addSizes(listing.TotalSizeBytes, entry.SizeBytes)
	}
	listing.TotalCount = len(listing.Objects)

	return listing, nil
}

// checkWellFormed runs the strict decoder over the whole text. Token, unlike the
// raw tokenizer, rejects mismatched end tags and elements left open at EOF.
// It does not police the prolog and epilog, so a single root element and
// whitespace-only text outside it are checked here.
func checkWellFormed(text string) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !sawRoot {
				return &xml.SyntaxError{Msg: "no root element", Line: 1}
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return outsideRoot(dec, "more than one root element")
			}
			sawRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(strings.TrimPrefix(string(t), "\uFEFF")) != "" {
				return outsideRoot(dec, "text outside the root element")
			}
		}
	}
}

func outsideRoot(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}

// parseContents extracts one object entry. ok is false when the entry has no key.
func parseContents(e *etree.Element) (types.ObjectEntry, bool) {
	key := childText(e, "Key", "")
	if key == "" {
		return types.ObjectEntry{}, false
	}

	entry := types.ObjectEntry{
		Key:               key,
		SizeBytes:         ParseSize(childText(e, "Size", "0")),
		LastModified:      childText(e, "LastModified", ""),
		ETag:              StripETag(childText(e, "ETag", "")),
		StorageClass:      childText(e, "StorageClass", ""),
		ChecksumAlgorithm: childText(e, "ChecksumAlgorithm", ""),
		Extension:         Extension(key),
	}

	if owner := firstDescendant(e, "Owner"); owner != nil {
		entry.Owner = &types.Owner{
			ID:          childText(owner, "ID", ""),
			DisplayName: childText(owner, "DisplayName", ""),
		}
	}

	return entry, true
}

// ParseSize reads the leading integer of s, ignoring leading whitespace and any
// trailing garbage. Text with no leading digits, or a value that overflows int64, yields 0.
func ParseSize(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// addSizes adds b to a, saturating at the int64 bounds instead of wrapping
func addSizes(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

// StripETag removes every double-quote character from an ETag
func StripETag(etag string) string {
	return strings.ReplaceAll(etag, `"`, "")
}

// Extension returns the upper-cased text after the last dot in key,
// or NoExtension when key contains no dot.
func Extension(key string) string {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return types.NoExtension
	}
	return strings.ToUpper(key[i+1:])
}

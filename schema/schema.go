// Package schema implements the lightweight XML schema extractor that
// supports the Opaque handler and the stream-level fallback extractor
// (spec.md §4.9). The extraction itself is the spec's authoritative
// regex scrape; github.com/arturoeanton/go-xml is used alongside it to
// confirm the slice is actually well-formed XML, a cross-check the
// regex alone can't offer, the way the teacher pairs a cheap heuristic
// (determineEncoding's tag-group check) with a stricter fallback.
package schema

import (
	"regexp"
	"strings"

	goxml "github.com/arturoeanton/go-xml/xml"
)

// Table is the structured extract of an embedded DataTable XML schema
// (spec.md §4.9 output shape).
type Table struct {
	Type        string
	TableName   string
	Columns     []Column
	HasDiffgram bool
	WellFormed  bool
}

// Column is one extracted schema column.
type Column struct {
	Name string
	Type string
}

var (
	reElementName = regexp.MustCompile(`element name="([^"]+)"`)
	reElementFull = regexp.MustCompile(`element name="([^"]+)"(?:[^>]*type="([^"]+)")?`)
)

// Extract scrapes a "<?xml ... </xs:schema>" slice per spec.md §4.9: the
// table name is the first "element name" match, columns are every match
// with that entry and any DataSet-named entry dropped, and hasDiffgram
// reports whether "<diffgr:diffgram" appears in the slice.
func Extract(xmlSlice string) *Table {
	nameMatch := reElementName.FindStringSubmatch(xmlSlice)
	tableName := ""
	if nameMatch != nil {
		tableName = nameMatch[1]
	}

	var columns []Column
	for _, m := range reElementFull.FindAllStringSubmatch(xmlSlice, -1) {
		name := m[1]
		if name == tableName {
			continue
		}
		if strings.Contains(name, "DataSet") {
			continue
		}
		typ := m[2]
		if typ == "" {
			typ = "string"
		}
		columns = append(columns, Column{Name: name, Type: typ})
	}

	table := &Table{
		Type:        "DataTable Schema",
		TableName:   tableName,
		Columns:     columns,
		HasDiffgram: strings.Contains(xmlSlice, "<diffgr:diffgram"),
	}
	table.WellFormed = isWellFormed(xmlSlice)
	return table
}

// isWellFormed reports whether go-xml can map the slice into an
// OrderedMap without error; a parse failure here never blocks extraction,
// it only downgrades the WellFormed flag attached to the result.
func isWellFormed(xmlSlice string) bool {
	doc, err := goxml.MapXML(strings.NewReader(xmlSlice))
	if err != nil || doc == nil {
		return false
	}
	elements, err := goxml.QueryAll(doc, "//element")
	return err == nil && len(elements) > 0
}

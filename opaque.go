package viewstate

import (
	"strings"

	"github.com/b71729/viewstate/noise"
	"github.com/b71729/viewstate/schema"
)

const (
	xmlSchemaOpen  = "<?xml"
	xmlSchemaClose = "</xs:schema>"
	diffgramMarker = "<diffgr:diffgram"
)

// decodeOpaque reads a varint length followed by that many octets of a
// nested .NET BinaryFormatter stream, which is never parsed in full
// (spec.md §4.7). It returns the declared length, the raw octets actually
// read, and a best-effort structured extract.
func decodeOpaque(c *Cursor, ctx *decodeContext) Value {
	declared := ReadVarint(c)
	raw := c.ReadN(int(declared))
	return OpaqueValue{
		Length:  int(declared),
		Raw:     raw,
		Extract: extractOpaqueContent(raw, ctx.cfg),
	}
}

// extractOpaqueContent implements the bulleted extraction policy of
// spec.md §4.7.
func extractOpaqueContent(raw []byte, cfg Config) OpaqueExtract {
	var extract OpaqueExtract

	text := string(raw)
	if strings.Contains(text, "System.Data.DataTable") {
		extract.ObjectType = "DataTable"
	}

	if slice, ok := findXMLSchemaSlice(raw); ok {
		extract.Schema = toTableSchema(schema.Extract(slice))
	}

	extract.HasDiffgram = strings.Contains(text, diffgramMarker)

	extract.Strings = extractOpaqueStrings(raw, cfg)

	return extract
}

func extractOpaqueStrings(raw []byte, cfg Config) []string {
	max := cfg.MaxOpaqueStrings
	if max <= 0 {
		max = 50
	}
	return noise.ExtractPrintableRuns(raw, 4, max)
}

// findXMLSchemaSlice locates an embedded schema block between "<?xml" and
// the next "</xs:schema>", inclusive of the closing tag (spec.md §4.7).
func findXMLSchemaSlice(raw []byte) (string, bool) {
	text := string(raw)
	start := strings.Index(text, xmlSchemaOpen)
	if start < 0 {
		return "", false
	}
	rel := strings.Index(text[start:], xmlSchemaClose)
	if rel < 0 {
		return "", false
	}
	end := start + rel + len(xmlSchemaClose)
	return text[start:end], true
}

func toTableSchema(t *schema.Table) *TableSchema {
	if t == nil {
		return nil
	}
	cols := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, Column{Name: c.Name, Type: c.Type})
	}
	return &TableSchema{
		Type:        t.Type,
		TableName:   t.TableName,
		Columns:     cols,
		HasDiffgram: t.HasDiffgram,
	}
}

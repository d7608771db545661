package viewstate

import (
	"strings"

	"github.com/b71729/viewstate/noise"
	"github.com/b71729/viewstate/schema"
	"github.com/rs/zerolog/log"
)

// recoverUnknownTag implements the tag-level recovery path (spec.md
// §4.8, level 1): rewind one octet and try to read the byte that was the
// tag as the first octet of a varint-length-prefixed string. A printable,
// non-empty result is salvaged as Text; otherwise the tag is embedded as
// an Unknown marker and the cursor is left where the failed attempt put
// it, per the "do not rewind further" policy.
func recoverUnknownTag(c *Cursor, tag byte, tagPos int, ctx *decodeContext) Value {
	log.Debug().Uint8("tag", tag).Int("offset", tagPos).Msg("unrecognized tag, attempting recovery")
	c.Rewind1()
	s := ReadString(c)
	if isPrintableASCII(s) {
		ctx.stats.Strings++
		return TextValue{V: s}
	}
	return UnknownValue{Tag: tag, Offset: tagPos}
}

// FallbackContent is the shape of the "content" field in the fallback
// Map produced when structured parsing can't proceed at all (spec.md
// §4.8, level 2).
type FallbackContent struct {
	XMLSchemas  []*TableSchema `json:"xmlSchemas,omitempty"`
	DotNetTypes []string       `json:"dotNetTypes,omitempty"`
	Strings     []string       `json:"strings,omitempty"`
	Structure   Value          `json:"structure,omitempty"`
}

const (
	xsSchemaOpen    = "<xs:schema"
	diffgramOpen    = "<diffgr:"
	diffgramClose   = "</diffgr:diffgram>"
	maxScanBlockLen = 5000
)

// runFallbackExtractor scans the raw octet buffer for readable structure
// when the structured parser can't produce a value at all (spec.md §4.8
// level 2). It always succeeds: worst case every field of the returned
// content is empty.
func runFallbackExtractor(data []byte, cfg Config) MapValue {
	log.Warn().Int("size", len(data)).Msg("structured parse failed, running fallback extractor")

	fallbackCap := cfg.MaxFallbackRuns
	if fallbackCap <= 0 {
		fallbackCap = 200
	}
	strs := noise.ExtractPrintableRuns(data, 4, fallbackCap)
	types := noise.ExtractDotNetTypes(data)
	schemas := extractXMLBlocks(data)

	var structure Value
	if v, ok := retryStructuredParse(data, cfg); ok {
		structure = v
	}

	content := FallbackContent{
		XMLSchemas:  schemas,
		DotNetTypes: types,
		Strings:     strs,
		Structure:   structure,
	}

	entries := []MapEntry{
		{Key: "type", Value: TextValue{V: "ViewState"}},
		{Key: "format", Value: TextValue{V: "LosFormatter"}},
		{Key: "content", Value: fallbackContentValue(content)},
	}
	return MapValue{Entries: entries}
}

// fallbackContentValue converts the fallback content into a Map/List
// Value tree so it composes with the rest of the decode result without a
// separate JSON-only representation.
func fallbackContentValue(content FallbackContent) Value {
	var entries []MapEntry
	if len(content.XMLSchemas) > 0 {
		items := make([]Value, 0, len(content.XMLSchemas))
		for _, s := range content.XMLSchemas {
			items = append(items, tableSchemaValue(s))
		}
		entries = append(entries, MapEntry{Key: "xmlSchemas", Value: ListValue{Items: items}})
	}
	if len(content.DotNetTypes) > 0 {
		entries = append(entries, MapEntry{Key: "dotNetTypes", Value: stringListValue(content.DotNetTypes)})
	}
	if len(content.Strings) > 0 {
		entries = append(entries, MapEntry{Key: "strings", Value: stringListValue(content.Strings)})
	}
	if content.Structure != nil {
		entries = append(entries, MapEntry{Key: "structure", Value: content.Structure})
	}
	return MapValue{Entries: entries}
}

func stringListValue(ss []string) Value {
	items := make([]Value, 0, len(ss))
	for _, s := range ss {
		items = append(items, TextValue{V: s})
	}
	return ListValue{Items: items}
}

func tableSchemaValue(t *TableSchema) Value {
	entries := []MapEntry{
		{Key: "type", Value: TextValue{V: t.Type}},
	}
	if t.TableName != "" {
		entries = append(entries, MapEntry{Key: "tableName", Value: TextValue{V: t.TableName}})
	}
	cols := make([]Value, 0, len(t.Columns))
	for _, col := range t.Columns {
		cols = append(cols, MapValue{Entries: []MapEntry{
			{Key: "name", Value: TextValue{V: col.Name}},
			{Key: "type", Value: TextValue{V: col.Type}},
		}})
	}
	entries = append(entries, MapEntry{Key: "columns", Value: ListValue{Items: cols}})
	if t.HasDiffgram {
		entries = append(entries, MapEntry{Key: "hasDiffgram", Value: BoolValue{V: true}})
	}
	return MapValue{Entries: entries}
}

// extractXMLBlocks walks the buffer for "<?xml", "<xs:schema", or
// "<diffgr:" starts, bounding each block at its natural close tag or at
// maxScanBlockLen octets past the start (spec.md §4.8 level 2, bullet 3).
func extractXMLBlocks(data []byte) []*TableSchema {
	text := string(data)
	var out []*TableSchema
	seen := make(map[int]bool)

	scan := func(marker, closeTag string) {
		offset := 0
		for {
			idx := strings.Index(text[offset:], marker)
			if idx < 0 {
				return
			}
			start := offset + idx
			if seen[start] {
				offset = start + len(marker)
				continue
			}
			seen[start] = true
			end := len(text)
			if closeTag != "" {
				if rel := strings.Index(text[start:], closeTag); rel >= 0 {
					end = start + rel + len(closeTag)
				} else if start+maxScanBlockLen < end {
					end = start + maxScanBlockLen
				}
			} else if start+maxScanBlockLen < end {
				end = start + maxScanBlockLen
			}
			out = append(out, schemaFor(text[start:end]))
			offset = end
		}
	}

	scan(xmlSchemaOpen, xmlSchemaClose)
	scan(xsSchemaOpen, xmlSchemaClose)
	scan(diffgramOpen, diffgramClose)

	return out
}

func schemaFor(slice string) *TableSchema {
	return toTableSchema(schema.Extract(slice))
}

// retryStructuredParse re-attempts a structured decode from offset 0,
// swallowing any panic (spec.md §4.8 level 2, bullet 4).
func retryStructuredParse(data []byte, cfg Config) (v Value, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	ctx := &decodeContext{interns: newInternTables(), cfg: cfg}
	v = decodeFramed(data, ctx)
	_, isUnknown := v.(UnknownValue)
	return v, !isUnknown
}

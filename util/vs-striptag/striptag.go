// 2>/dev/null;/usr/bin/env go run $0 $@; exit $?
// Package main implements a CLI for removing a single entry from a
// decoded ViewState tree (by list index or map key) and re-encoding the
// result, the ViewState analogue of stripping a tag from a DICOM file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	viewstate "github.com/b71729/viewstate"
)

func fatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func main() {
	if len(os.Args) != 3 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fatalf("usage: %s in_file (index|key)", filepath.Base(os.Args[0]))
	}

	inFile := os.Args[1]
	addr := os.Args[2]

	stat, err := os.Stat(inFile)
	if err != nil {
		fatalf(`failed to stat "%s": %v`, inFile, err)
	}
	if stat.IsDir() {
		fatalf("%s is a directory. please specify one file.", inFile)
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		fatalf("error opening %s: %v", inFile, err)
	}

	result, err := viewstate.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		fatalf("error decoding viewstate: %v", err)
	}

	stripped, ok := strip(result.Value, addr)
	if !ok {
		fatalf("%q could not be found in the decoded tree", addr)
	}

	encoded, err := viewstate.Encode(stripped)
	if err != nil {
		fatalf("error re-encoding viewstate: %v", err)
	}
	fmt.Println(encoded.Encoded)
}

// strip returns a copy of v with the addressed entry removed. Only the
// root List or Map shape can be stripped; addressing into nested
// structures is left to vs-extracttag for inspection.
func strip(v viewstate.Value, addr string) (viewstate.Value, bool) {
	switch val := v.(type) {
	case viewstate.ListValue:
		idx, err := strconv.Atoi(addr)
		if err != nil || idx < 0 || idx >= len(val.Items) {
			return nil, false
		}
		items := make([]viewstate.Value, 0, len(val.Items)-1)
		items = append(items, val.Items[:idx]...)
		items = append(items, val.Items[idx+1:]...)
		return viewstate.ListValue{Items: items}, true
	case viewstate.MapValue:
		out := make([]viewstate.MapEntry, 0, len(val.Entries))
		removed := false
		for _, e := range val.Entries {
			if e.Key == addr {
				removed = true
				continue
			}
			out = append(out, e)
		}
		if !removed {
			return nil, false
		}
		return viewstate.MapValue{Entries: out}, true
	default:
		return nil, false
	}
}

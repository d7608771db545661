// 2>/dev/null;/usr/bin/env go run $0 $@; exit $?
// Package main implements a CLI for pulling a single entry out of a
// decoded ViewState tree, addressed by list index or map key.
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

	entry, found := lookup(result.Value, addr)
	if !found {
		fatalf("%q could not be found in the decoded tree", addr)
	}

	out, err := viewstate.ToJSON(entry)
	if err != nil {
		fatalf("error rendering entry: %v", err)
	}
	formatted, err := viewstate.FormatJSON(out)
	if err != nil {
		fatalf("error formatting entry: %v", err)
	}
	fmt.Println(formatted)
}

// lookup addresses a Value tree the way odcm-extracttag addresses a DICOM
// tag: list values by numeric index, map values by key.
func lookup(v viewstate.Value, addr string) (viewstate.Value, bool) {
	switch val := v.(type) {
	case viewstate.ListValue:
		idx, err := strconv.Atoi(addr)
		if err != nil || idx < 0 || idx >= len(val.Items) {
			return nil, false
		}
		return val.Items[idx], true
	case viewstate.TypedArrayValue:
		idx, err := strconv.Atoi(addr)
		if err != nil || idx < 0 || idx >= len(val.Items) {
			return nil, false
		}
		return val.Items[idx], true
	case viewstate.MapValue:
		return val.Get(addr)
	case viewstate.PairValue:
		switch addr {
		case "first":
			return val.First, true
		case "second":
			return val.Second, true
		}
		return nil, false
	case viewstate.TripletValue:
		switch addr {
		case "first":
			return val.First, true
		case "second":
			return val.Second, true
		case "third":
			return val.Third, true
		}
		return nil, false
	default:
		return nil, false
	}
}

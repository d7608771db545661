// Command viewstate-util is a multi-verb CLI over the viewstate package:
// decode, encode, json, validate, and format.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	viewstate "github.com/b71729/viewstate"
)

var baseFile = filepath.Base(os.Args[0])

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("usage: %s [%s] [flags]\n", baseFile, strings.Join([]string{"decode", "encode", "json", "validate", "format"}, " / "))
	os.Exit(1)
}

func main() {
	viewstate.GetConfig()
	if len(os.Args) == 1 || os.Args[1] == "--help" || os.Args[1] == "-h" {
		usage()
	}
	switch os.Args[1] {
	case "decode":
		startDecode()
	case "encode":
		startEncode()
	case "json":
		startJSON()
	case "validate":
		startValidate()
	case "format":
		startFormat()
	default:
		usage()
	}
}

func readInput() string {
	if len(os.Args) >= 3 {
		data, err := os.ReadFile(os.Args[2])
		check(err)
		return strings.TrimSpace(string(data))
	}
	data, err := io.ReadAll(os.Stdin)
	check(err)
	return strings.TrimSpace(string(data))
}

/*
===============================================================================
    Mode: Decode
===============================================================================
*/

// startDecode reads a Base64 ViewState string and prints its decoded
// structure as indented text.
func startDecode() {
	text := readInput()
	result, err := viewstate.Decode(text)
	check(err)
	if result.Note != "" {
		fmt.Fprintf(os.Stderr, "note: %s\n", result.Note)
	}
	for _, line := range viewstate.Describe(result.Value) {
		fmt.Println(line)
	}
}

/*
===============================================================================
    Mode: JSON
===============================================================================
*/

// startJSON decodes a ViewState string and prints its JSON embedding.
func startJSON() {
	text := readInput()
	result, err := viewstate.Decode(text)
	check(err)
	out, err := viewstate.ToJSON(result.Value)
	check(err)
	formatted, err := viewstate.FormatJSON(out)
	check(err)
	fmt.Println(formatted)
}

/*
===============================================================================
    Mode: Encode
===============================================================================
*/

// startEncode reads the JSON embedding of a data model and re-encodes it
// as a Base64 ViewState string.
func startEncode() {
	text := readInput()
	v, err := viewstate.ParseJSON(text)
	check(err)
	result, err := viewstate.Encode(v)
	check(err)
	fmt.Println(result.Encoded)
}

/*
===============================================================================
    Mode: Validate
===============================================================================
*/

// startValidate checks whether stdin or the named file is well-formed JSON.
func startValidate() {
	text := readInput()
	result := viewstate.ValidateJSON(text)
	if result.Valid {
		fmt.Println("valid")
		return
	}
	fmt.Printf("invalid at line %d, column %d: %s\n", result.Line, result.Column, result.Err)
	os.Exit(1)
}

/*
===============================================================================
    Mode: Format
===============================================================================
*/

// startFormat pretty-prints JSON text without disturbing key order.
func startFormat() {
	text := readInput()
	out, err := viewstate.FormatJSON(text)
	check(err)
	fmt.Println(out)
}

// Package main implements a ViewState inspector CLI: point it at a file
// holding a single Base64 ViewState string, or a directory of such files,
// and it prints the decoded structure of each.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/b71729/viewstate/common"

	viewstate "github.com/b71729/viewstate"
)

func termRed(s string) string   { return fmt.Sprintf("\x1b[31;1m%s\x1b[0m", s) }
func termGreen(s string) string { return fmt.Sprintf("\x1b[92;1m%s\x1b[0m", s) }

func inspectFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result, err := viewstate.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	for _, line := range viewstate.Describe(result.Value) {
		fmt.Printf("  %s %s\n", termGreen("+"), line)
	}
	return nil
}

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Printf("  %s usage: %s FILE_OR_DIR\n", termRed("!!"), filepath.Base(os.Args[0]))
		return
	}
	stat, err := os.Stat(os.Args[1])
	if err != nil {
		fmt.Printf("  %s failed to stat '%s': %v\n", termRed("!!"), os.Args[1], err)
		return
	}
	if !stat.IsDir() {
		if err := inspectFile(os.Args[1]); err != nil {
			fmt.Printf("  %s %v\n", termRed("!!"), err)
		}
		return
	}

	errorCount := 0
	successCount := 0
	err = common.ConcurrentlyWalkDir(os.Args[1], func(path string) {
		if ferr := inspectFile(path); ferr != nil {
			fmt.Printf("  %s %s: %v\n", termRed("!!"), filepath.Base(path), ferr)
			errorCount++
			return
		}
		successCount++
	})
	if err != nil {
		fmt.Printf("  %s %v\n", termRed("!!"), err)
		return
	}
	fmt.Printf("inspected %d files without errors, and failed to decode %d files\n", successCount, errorCount)
}

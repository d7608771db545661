// Package common holds small helpers shared by the codec and its CLI
// tools: a concurrent directory walker for batch decoding and a
// per-decode correlation id for log output. Grounded on the teacher's common/
// package of the same shape.
package common

import (
	"os"
	"path/filepath"
	"sync"
)

// OpenFileLimit restricts the number of files a batch walk holds open
// concurrently.
var OpenFileLimit = 64

// ConcurrentlyWalkDir recursively traverses dirPath and calls onFile for
// each regular file found, fanning out one goroutine per file gated by
// OpenFileLimit concurrent slots (grounded on the teacher's
// ConcurrentlyWalkDir in misc.go/common/dir.go).
func ConcurrentlyWalkDir(dirPath string, onFile func(file string)) error {
	guard := make(chan struct{}, OpenFileLimit)
	var files []string

	err := filepath.Walk(dirPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return err
	}

	wg := sync.WaitGroup{}
	for _, filePath := range files {
		wg.Add(1)
		guard <- struct{}{}
		go func(path string) {
			defer wg.Done()
			onFile(path)
			<-guard
		}(filePath)
	}
	wg.Wait()
	return nil
}

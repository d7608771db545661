package common

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentlyWalkDirVisitsEveryFile(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.txt", "b.txt", "nested/c.txt"}
	for _, name := range names {
		full := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		assert.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	var mu sync.Mutex
	var visited []string
	err := ConcurrentlyWalkDir(dir, func(file string) {
		mu.Lock()
		visited = append(visited, filepath.Base(file))
		mu.Unlock()
	})
	assert.NoError(t, err)

	sort.Strings(visited)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, visited)
}

func TestConcurrentlyWalkDirOnEmptyDir(t *testing.T) {
	dir := t.TempDir()
	var visited []string
	err := ConcurrentlyWalkDir(dir, func(file string) {
		visited = append(visited, file)
	})
	assert.NoError(t, err)
	assert.Empty(t, visited)
}

func TestConcurrentlyWalkDirOnMissingDirErrors(t *testing.T) {
	err := ConcurrentlyWalkDir(filepath.Join(os.TempDir(), "does-not-exist-viewstate-test"), func(string) {})
	assert.Error(t, err)
}

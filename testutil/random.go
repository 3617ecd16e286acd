package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// RandomBytes returns n pseudo random bytes. The same seed always yields
// the same content so failures can be reproduced.
func RandomBytes(seed int64, n int) []byte {
	p := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(p)
	return p
}

// CreateRandomFile writes size random bytes to a new file named name in
// dir and returns its path and content.
func CreateRandomFile(t testing.TB, dir, name string, size int) (string, []byte) {
	t.Helper()

	content := RandomBytes(int64(size)+int64(len(name)), size)
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path, content
}

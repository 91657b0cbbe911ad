package driver

import (
	"context"
	"crypto/sha256"
	"os"
	"testing"

	"plume/internal/format"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("plume-test", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	content := sha256.Sum256([]byte("let x = 1\n"))
	key := cacheKey(content, format.Options{IndentWidth: 4})
	payload := &FormatPayload{
		Schema:      diskCacheSchemaVersion,
		ContentHash: Digest(content),
		Changed:     true,
		Formatted:   []byte("let x = 1\n"),
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got FormatPayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.ContentHash != payload.ContentHash || !got.Changed || string(got.Formatted) != "let x = 1\n" {
		t.Fatalf("payload mismatch: %+v", got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCache("plume-test", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	var got FormatPayload
	ok, err := cache.Get(Digest{1}, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("hit on an empty cache")
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := sha256.Sum256([]byte("pass\n"))
	spaces := cacheKey(content, format.Options{IndentWidth: 4})
	tabs := cacheKey(content, format.Options{IndentWidth: 4, UseTabs: true})
	if spaces == tabs {
		t.Fatalf("options must change the cache key")
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	cache, err := OpenDiskCache("plume-test", t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	path := writeSource(t, dir, "c.plm", "let   x = 1\n")

	opts := FormatOptions{Check: true, Cache: cache}
	first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !first[0].Changed {
		t.Fatalf("first run should report Changed")
	}

	// Second run over identical content hits the cache and must agree.
	second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].Changed || second[0].Err != nil {
		t.Fatalf("cached result differs: %+v", second[0])
	}

	if err := os.WriteFile(path, []byte("let x = 1\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	third, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third[0].Changed {
		t.Fatalf("new content must yield a fresh cache entry: %+v", third[0])
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := t.TempDir()
	cacheDir := dir + "/cache"
	cache, err := OpenDiskCache("plume-test", cacheDir)
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := Digest{42}
	if err := cache.Put(key, &FormatPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Fatalf("cache dir should be gone, stat err = %v", err)
	}
}

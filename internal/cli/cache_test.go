package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/suechart/pkg/cache"
)

func TestCachePath(t *testing.T) {
	e := newTestEnv(t)
	out, err := e.run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(e.dir, "cache"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClear(t *testing.T) {
	e := newTestEnv(t)
	dir := filepath.Join(e.dir, "cache")

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := countEntries(dir); n != 3 {
		t.Fatalf("countEntries = %d, want 3", n)
	}

	if _, err := e.run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}

	if n, _ := countEntries(dir); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory removed: %v", err)
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
}

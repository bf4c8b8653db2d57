package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n <= 0 {
		t.Errorf("Expected positive worker count, got %d", n)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.YAML", "b.yaml", "c.txt"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatest(dir, []string{".yaml"})
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "b.yaml" {
		t.Errorf("Expected b.yaml, got %s", latest)
	}

	if _, err := FindLatest(dir, []string{".json"}); err == nil {
		t.Error("Expected error when nothing matches")
	}
}

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		list string
		want string
	}{
		{" V....D h264_nvenc  NVIDIA NVENC\n V....D libx264", "h264_nvenc"},
		{" V....D h264_videotoolbox\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.list); got != tt.want {
			t.Errorf("pickEncoder() = %s, want %s", got, tt.want)
		}
	}
}

func TestFramePool(t *testing.T) {
	pool := NewFramePool(64, 32)

	img := pool.Get()
	if img.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Fatalf("Unexpected frame bounds: %v", img.Bounds())
	}
	pool.Put(img)
	// foreign sizes must not leak into the pool
	pool.Put(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	pool.Put(nil)

	for i := 0; i < 4; i++ {
		if got := pool.Get().Bounds(); got != image.Rect(0, 0, 64, 32) {
			t.Errorf("Pool returned frame of wrong size: %v", got)
		}
	}
}

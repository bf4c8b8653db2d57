package video

import (
	"context"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/telop/internal/config"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	params := config.SegmentParams{Width: 640, Height: 360, FPS: 25, Duration: 4}

	tests := []struct {
		codec string
		want  string
	}{
		{"", "-crf 23 -preset medium"},
		{"h264_nvenc", "-cq 23"},
		{"h264_videotoolbox", "-b:v 2300k"},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			e := &FFmpegEncoder{Codec: tt.codec, Quality: 23}
			args := strings.Join(e.buildFFmpegArgs("out.mp4", params), " ")

			if !strings.Contains(args, "-video_size 640x360") {
				t.Errorf("Missing frame size: %s", args)
			}
			if !strings.Contains(args, "-framerate 25") {
				t.Errorf("Missing frame rate: %s", args)
			}
			if !strings.Contains(args, tt.want) {
				t.Errorf("Expected %q in %s", tt.want, args)
			}
			if !strings.HasSuffix(args, "out.mp4") {
				t.Errorf("Output path should be last: %s", args)
			}
		})
	}
}

func TestBuildBurnArgs(t *testing.T) {
	e := &FFmpegEncoder{Quality: 20}
	args := e.buildBurnArgs("in.mp4", "out.mp4", "drawtext=text='A'")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-vf drawtext=text='A'") {
		t.Errorf("Missing filter: %s", joined)
	}
	if !strings.Contains(joined, "-c:a copy") {
		t.Errorf("Audio should be copied: %s", joined)
	}

	noFilter := strings.Join(e.buildBurnArgs("in.mp4", "out.mp4", ""), " ")
	if strings.Contains(noFilter, "-vf") {
		t.Errorf("Empty filter should be omitted: %s", noFilter)
	}
}

func TestStreamEncode(t *testing.T) {
	skipIfNoFFmpeg(t)

	out := filepath.Join(t.TempDir(), "out.mp4")
	params := config.SegmentParams{Width: 64, Height: 32, FPS: 10, Duration: 0.5}
	e := &FFmpegEncoder{Quality: 30}

	s, err := e.Open(context.Background(), out, params)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	frame := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for i := 0; i < 5; i++ {
		if err := s.WriteFrame(frame); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}
	if err := s.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("Expected size mismatch error")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Errorf("Expected encoded video at %s", out)
	}
}

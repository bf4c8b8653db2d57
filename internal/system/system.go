package system

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the number of physical cores, falling back to
// runtime.NumCPU when gopsutil cannot read them.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// FindLatest returns the most recently modified file in dir whose extension
// (case-insensitive) is one of exts.
func FindLatest(dir string, exts []string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExtension(f.Name(), exts) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), dir)
	}
	return latestFile, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// GetBestH264Encoder picks a hardware H.264 encoder when ffmpeg offers one.
// Order: VideoToolbox (macOS), NVENC, then libx264.
func GetBestH264Encoder() string {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(encoders string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(encoders, name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality returns a sensible quality value for the encoder: a bitrate
// factor for VideoToolbox, CQ for NVENC and CRF for x264.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

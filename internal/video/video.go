package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/ivlev/telop/internal/config"
)

// FFmpegEncoder encodes rendered caption frames, or burns captions into an
// existing video, with the ffmpeg binary.
type FFmpegEncoder struct {
	Binary  string // defaults to "ffmpeg"
	Codec   string // e.g. libx264, h264_nvenc
	Quality int
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

// Stream receives raw frames on ffmpeg's stdin.
type Stream struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   bytes.Buffer
	size  image.Point
}

// Open starts ffmpeg reading raw RGBA frames of the segment size.
func (e *FFmpegEncoder) Open(ctx context.Context, videoPath string, params config.SegmentParams) (*Stream, error) {
	args := e.buildFFmpegArgs(videoPath, params)

	s := &Stream{size: image.Pt(params.Width, params.Height)}
	s.cmd = exec.CommandContext(ctx, e.binary(), args...)
	s.cmd.Stdout = &s.out
	s.cmd.Stderr = &s.out

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

// WriteFrame writes one frame; it must match the stream size.
func (s *Stream) WriteFrame(img *image.RGBA) error {
	if img.Rect.Size() != s.size {
		return fmt.Errorf("frame size %v does not match stream size %v", img.Rect.Size(), s.size)
	}
	if img.Stride == s.size.X*4 {
		_, err := s.stdin.Write(img.Pix[:s.size.Y*img.Stride])
		return err
	}
	for y := 0; y < s.size.Y; y++ {
		off := y * img.Stride
		if _, err := s.stdin.Write(img.Pix[off : off+s.size.X*4]); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes stdin and waits for ffmpeg to finish.
func (s *Stream) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, s.out.String())
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(videoPath string, params config.SegmentParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-t", fmt.Sprintf("%f", params.Duration),
		"-pix_fmt", "yuv420p",
		"-c:v", e.codec(),
	}
	args = append(args, e.qualityArgs()...)
	return append(args, videoPath)
}

// Burn draws captions onto an existing video using a drawtext filter chain.
// Audio is copied unchanged.
func (e *FFmpegEncoder) Burn(ctx context.Context, inputPath, outputPath, filter string) error {
	args := e.buildBurnArgs(inputPath, outputPath, filter)
	cmd := exec.CommandContext(ctx, e.binary(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg drawtext error: %v, output: %s", err, string(out))
	}
	return nil
}

func (e *FFmpegEncoder) buildBurnArgs(inputPath, outputPath, filter string) []string {
	args := []string{"-y", "-i", inputPath}
	if filter != "" {
		args = append(args, "-vf", filter)
	}
	args = append(args, "-c:v", e.codec(), "-pix_fmt", "yuv420p")
	args = append(args, e.qualityArgs()...)
	args = append(args, "-c:a", "copy", outputPath)
	return args
}

func (e *FFmpegEncoder) codec() string {
	if e.Codec == "" {
		return "libx264"
	}
	return e.Codec
}

func (e *FFmpegEncoder) qualityArgs() []string {
	switch e.codec() {
	case "h264_videotoolbox":
		// VideoToolbox takes a bitrate rather than -q:v
		return []string{"-b:v", fmt.Sprintf("%dk", e.Quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", e.Quality)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", e.Quality), "-preset", "medium"}
	}
}

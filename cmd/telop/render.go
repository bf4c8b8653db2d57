package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/engine"
	"github.com/ivlev/telop/internal/logging"
	"github.com/ivlev/telop/internal/renderer"
	"github.com/ivlev/telop/internal/source"
	"github.com/ivlev/telop/internal/system"
	"github.com/ivlev/telop/internal/video"
)

var (
	renderOutput   string
	renderDuration float64
	burnInput      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render captions to an .mp4 or a directory of PNG frames",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Validate(); err != nil {
			return err
		}

		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}

		duration := renderDuration
		if duration <= 0 {
			duration = set.End()
		}
		params := cfg.Segment(duration)
		params.EffectSec = effect

		r, err := newRenderer(cfg)
		if err != nil {
			return err
		}

		var sink engine.FrameSink
		if strings.EqualFold(filepath.Ext(renderOutput), ".mp4") {
			enc := newEncoder(cfg)
			log.Info().Str("encoder", enc.Codec).Msg("[*] Encoding video")
			sink, err = enc.Open(cmd.Context(), renderOutput, params)
		} else {
			sink, err = engine.NewPNGSink(renderOutput)
		}
		if err != nil {
			return err
		}

		project := engine.NewProject(params, cfg.Workers, set, r, logging.WithComponent("engine"))
		if _, err := project.Run(cmd.Context(), sink); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		log.Info().Str("output", renderOutput).Msg("[+++] Done")
		return nil
	},
}

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Burn captions into an existing video with ffmpeg drawtext",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}

		if _, err := renderer.EasingByName(cfg.Easing); err != nil {
			return err
		}
		filter := renderer.GenerateDrawTextFilter(set, effect, renderer.DrawTextStyle{
			FontSize:  13 * cfg.FontScale,
			FontColor: cfg.TextColor,
			BoxColor:  cfg.BoxColor,
			BoxAlpha:  cfg.BoxAlpha,
			Margin:    cfg.Margin,
			Easing:    cfg.Easing,
		})
		log.Debug().Str("filter", filter).Msg("drawtext chain")

		if err := newEncoder(cfg).Burn(cmd.Context(), burnInput, renderOutput, filter); err != nil {
			return err
		}
		log.Info().Str("output", renderOutput).Msg("[+++] Done")
		return nil
	},
}

func newRenderer(cfg *config.Config) (*renderer.Renderer, error) {
	r := renderer.NewRenderer(cfg.Width, cfg.Height)
	r.Scale = cfg.FontScale
	r.Margin = cfg.Margin
	r.BoxAlpha = cfg.BoxAlpha

	var err error
	if r.TextColor, err = source.ParseHexColor(cfg.TextColor); err != nil {
		return nil, fmt.Errorf("text_color: %w", err)
	}
	if r.BoxColor, err = source.ParseHexColor(cfg.BoxColor); err != nil {
		return nil, fmt.Errorf("box_color: %w", err)
	}

	bg, err := source.Open(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if r.Background, err = bg.Background(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return r, nil
}

func newEncoder(cfg *config.Config) *video.FFmpegEncoder {
	codec := cfg.VideoEncoder
	if codec == "" {
		codec = system.GetBestH264Encoder()
	}
	quality := cfg.Quality
	if quality == 0 {
		quality = system.DefaultQuality(codec)
	}
	return &video.FFmpegEncoder{Codec: codec, Quality: quality}
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output .mp4 file or frame directory")
	renderCmd.Flags().Float64VarP(&renderDuration, "duration", "d", 0, "timeline length (default: end of last caption)")
	renderCmd.MarkFlagRequired("output")

	burnCmd.Flags().StringVarP(&burnInput, "input", "i", "", "input video")
	burnCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output video")
	burnCmd.MarkFlagRequired("input")
	burnCmd.MarkFlagRequired("output")
}

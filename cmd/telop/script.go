package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/director"
)

var (
	outputPath  string
	genDuration float64
	genByLength bool
	genMinDwell float64
	genMaxDwell float64
	srtLenient  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [lines.txt]",
	Short: "Lay out one caption per line across --duration seconds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		lines, err := readLines(args[0])
		if err != nil {
			return err
		}

		d := director.NewDirector()
		d.ByLength = genByLength
		d.MinDwell = genMinDwell
		d.MaxDwell = genMaxDwell
		d.EffectSec = cfg.EffectSec

		script, err := d.Generate(lines, genDuration)
		if err != nil {
			return err
		}
		return saveScript(cfg, script)
	},
}

var importSRTCmd = &cobra.Command{
	Use:   "import-srt [file.srt]",
	Short: "Convert a SubRip file into a caption script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		script, err := director.ImportSRT(data, srtLenient)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		script.SetEffect(cfg.EffectSec)
		return saveScript(cfg, script)
	},
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func saveScript(cfg *config.Config, script *director.Script) error {
	path := outputPath
	if path == "" {
		path = director.GenerateScriptPath(cfg.ScriptDir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := director.WriteScript(script, path); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("telops", len(script.Telops)).Msg("[+++] Script saved")
	return nil
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, importSRTCmd} {
		c.Flags().StringVarP(&outputPath, "output", "o", "", "output script (.yaml or .json)")
	}
	generateCmd.Flags().Float64VarP(&genDuration, "duration", "d", 0, "total duration in seconds")
	generateCmd.Flags().BoolVar(&genByLength, "by-length", false, "share time by caption length")
	generateCmd.Flags().Float64Var(&genMinDwell, "min-dwell", 1.0, "minimum seconds per caption")
	generateCmd.Flags().Float64Var(&genMaxDwell, "max-dwell", 6.0, "maximum seconds per caption (0 = none)")
	generateCmd.MarkFlagRequired("duration")
	importSRTCmd.Flags().BoolVar(&srtLenient, "lenient", true, "skip malformed cues")
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/telop/internal/config"
	"github.com/ivlev/telop/internal/director"
	"github.com/ivlev/telop/internal/logging"
	"github.com/ivlev/telop/internal/telop"
)

var (
	cfgFile    string
	scriptPath string
	effectSec  float64
	verbose    bool
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "telop",
	Short:         "telop - timed caption lookup, fades and rendering",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("effect") {
			cfg.EffectSec = effectSec
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./telop.yaml)")
	rootCmd.PersistentFlags().StringVarP(&scriptPath, "script", "s", "", "caption script (default: latest in script_dir)")
	rootCmd.PersistentFlags().Float64Var(&effectSec, "effect", telop.DefaultEffectSec, "fade length in seconds")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(textCmd, ratioCmd, frameCmd, checkCmd)
	rootCmd.AddCommand(generateCmd, importSRTCmd)
	rootCmd.AddCommand(renderCmd, burnCmd)
	rootCmd.AddCommand(serveCmd, playCmd)
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the effective configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		path := "telop.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		log.Info().Str("config", path).Msg("[+] Config written")
		return nil
	},
}

// loadScript reads the --script file, or the newest script in the
// configured directory, and resolves the fade length. An explicit --effect
// wins over the script, which wins over the config file.
func loadScript(cmd *cobra.Command) (telop.Set, float64, error) {
	cfg := config.FromContext(cmd.Context())

	path := scriptPath
	if path == "" {
		latest, err := director.FindLatestScript(cfg.ScriptDir)
		if err != nil {
			return nil, 0, fmt.Errorf("no --script given: %w", err)
		}
		path = latest
		log.Info().Str("script", path).Msg("[*] Using latest script")
	}

	script, err := director.ReadScript(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read script: %w", err)
	}

	set := script.Set()
	for _, issue := range director.Validate(set) {
		log.Warn().Str("kind", issue.Kind).Msg("[!] " + issue.String())
	}

	effect := script.Effect(cfg.EffectSec)
	if cmd.Flags().Changed("effect") {
		effect = cfg.EffectSec
	}
	return set, effect, nil
}

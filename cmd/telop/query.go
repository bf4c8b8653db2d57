package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/telop/internal/director"
)

var (
	queryTime float64
	asJSON    bool
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Print the caption active at --time (empty when none)",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _, err := loadScript(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), set.Text(queryTime))
		return nil
	},
}

var ratioCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Print fade-in and fade-out ratios at --time (-1 when no caption is active)",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "in=%g out=%g\n",
			set.InEffectRatio(effect, queryTime), set.OutEffectRatio(effect, queryTime))
		return nil
	},
}

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Print the full caption state at --time",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}
		f := set.At(effect, queryTime)
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(f)
		}
		if !f.Active {
			fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: no telop\n", f.Time)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.3fs: %q in=%.3f out=%.3f opacity=%.3f\n",
			f.Time, f.Text, f.In, f.Out, f.Opacity)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a caption script",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, effect, err := loadScript(cmd)
		if err != nil {
			return err
		}
		issues := director.Validate(set)
		for _, issue := range issues {
			fmt.Fprintln(cmd.OutOrStdout(), issue)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d telops, %.2fs, effect %.2fs, %d issues\n",
			len(set), set.End(), effect, len(issues))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{textCmd, ratioCmd, frameCmd} {
		c.Flags().Float64VarP(&queryTime, "time", "t", 0, "playback time in seconds")
		c.MarkFlagRequired("time")
	}
	frameCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
}

package cmd

import (
	"github.com/jsphweid/engraver/config"
	"github.com/spf13/cobra"
)

var (
	bpmFlag  float64
	gridFlag int
)

var rootCmd = &cobra.Command{
	Use:   "engraver",
	Short: "Engraves transcribed notes into a two-staff score",
	Long: `Engraves transcribed notes into a two-staff score: quantized, split at barlines
with ties, assigned to staves and voices, slurred, beamed and padded with rests.`,
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&bpmFlag, "bpm", 0, "tempo in beats per minute (defaults to the input's own tempo)")
	rootCmd.PersistentFlags().IntVar(&gridFlag, "grid", 0, "quantization grid in divisions per beat")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	if gridFlag > 0 {
		cfg = cfg.WithGrid(gridFlag)
	}
	return cfg, nil
}

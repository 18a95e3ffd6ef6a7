package cmd

import (
	"fmt"

	"github.com/jsphweid/engraver/chord"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/preview"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var measureFlag int

func init() {
	inspectCmd.Flags().IntVarP(&measureFlag, "measure", "m", -1, "only show this measure")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.json>",
	Short: "Inspects an engraved score",
	Long:  `Inspects an engraved score`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := util.ReadJSON[model.EngraveResponse](path)
	if err != nil {
		return err
	}

	fmt.Printf("score: %v (%v bpm)\n", res.ScoreId, res.Bpm)
	if measureFlag < 0 {
		fmt.Print(preview.Render(res.Measures))
		return nil
	}
	for _, m := range res.Measures {
		if m.Index == measureFlag {
			fmt.Println(preview.RenderMeasure(m))
			for _, c := range chord.GetChords(m, cfg.ChordTolerance) {
				fmt.Printf("  %v\n", c)
			}
			for _, n := range m.Notes {
				fmt.Printf("  %v %v\n", n.Id, preview.Token(n))
				if len(n.RemediationFlags) > 0 {
					fmt.Printf("    flags: %v\n", n.RemediationFlags)
				}
			}
			return nil
		}
	}
	return errors.Errorf("score has no measure %v", measureFlag)
}

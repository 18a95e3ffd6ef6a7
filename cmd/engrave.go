package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/engraver/logger"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/pipeline"
	"github.com/jsphweid/engraver/preview"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	outFlag     string
	midiOutFlag string
	previewFlag bool
)

func init() {
	engraveCmd.Flags().StringVarP(&outFlag, "out", "o", "", "write the engraved score as JSON to this file (default stdout)")
	engraveCmd.Flags().StringVar(&midiOutFlag, "midi-out", "", "also write the quantized score as a midi file")
	engraveCmd.Flags().BoolVar(&previewFlag, "preview", false, "print a text preview instead of JSON")
	rootCmd.AddCommand(engraveCmd)
}

var engraveCmd = &cobra.Command{
	Use:   "engrave <notes.json|file.mid>",
	Short: "Engraves a note list or midi file",
	Long:  `Engraves a note list or midi file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return engrave(args[0])
	},
}

func engrave(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req, err := readInput(path, bpmFlag)
	if err != nil {
		return err
	}

	res, err := pipeline.Engrave(req, cfg)
	if err != nil {
		return errors.Wrapf(err, "could not engrave %v", path)
	}
	logger.GetProjectLogger().WithFields(logrus.Fields{
		"score_id": res.ScoreId,
		"measures": res.Summary.NumMeasures,
		"notes":    res.Summary.NumNotes,
		"rests":    res.Summary.NumRests,
	}).Info("engraved")

	if midiOutFlag != "" {
		f, err := os.Create(midiOutFlag)
		if err != nil {
			return errors.Wrap(err, "could not create midi output")
		}
		defer f.Close()
		if err := midi.WriteScore(f, res.Measures, res.Bpm); err != nil {
			return err
		}
	}

	switch {
	case previewFlag:
		fmt.Print(preview.Render(res.Measures))
	case outFlag != "":
		return util.WriteJSON(outFlag, res)
	default:
		return printJSON(res)
	}
	return nil
}
